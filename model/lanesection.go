package model

// LaneSection is a range of arclength over which a road's lane
// configuration is constant except for per-lane width/speed cubics.
type LaneSection struct {
	S     float64
	SOrig float64

	Left   []*Lane // ordered by |ID| decreasing (outer-first)
	Center []*Lane
	Right  []*Lane

	// LaneMap maps an OpenDRIVE lane id to its compact output-lane index,
	// populated per side by the Reshaper's lane-mapping step.
	LaneMap map[int]int

	RightLaneNumber int
	LeftLaneNumber  int
	RightType       string // joined type string, e.g. "driving" or "driving|shoulder"
	LeftType        string

	// ID is not assigned by any subsystem of the core and stays empty;
	// edge ids are built by SectionBaseID instead.
	ID string
}

// NewLaneSection returns an empty lane section anchored at s.
func NewLaneSection(s float64) *LaneSection {
	return &LaneSection{S: s, SOrig: s, LaneMap: make(map[int]int)}
}

// LanesOnSide returns the lane slice for the given side.
func (ls *LaneSection) LanesOnSide(side Side) []*Lane {
	switch side {
	case SideLeft:
		return ls.Left
	case SideRight:
		return ls.Right
	default:
		return ls.Center
	}
}

// SetLanesOnSide replaces the lane slice for the given side.
func (ls *LaneSection) SetLanesOnSide(side Side, lanes []*Lane) {
	switch side {
	case SideLeft:
		ls.Left = lanes
	case SideRight:
		ls.Right = lanes
	default:
		ls.Center = lanes
	}
}

// LaneByID returns the lane with the given OpenDRIVE id on the given side,
// or nil.
func (ls *LaneSection) LaneByID(side Side, id int) *Lane {
	for _, l := range ls.LanesOnSide(side) {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Clone makes a shallow copy of the lane section's structure (new Lane
// pointers with copied slices, new LaneMap) anchored at a new S. Used by
// both reshaping passes to produce split sections.
func (ls *LaneSection) Clone(newS float64) *LaneSection {
	clone := &LaneSection{
		S:               newS,
		SOrig:           ls.SOrig,
		LaneMap:         make(map[int]int),
		RightLaneNumber: ls.RightLaneNumber,
		LeftLaneNumber:  ls.LeftLaneNumber,
		RightType:       ls.RightType,
		LeftType:        ls.LeftType,
	}
	clone.Left = cloneLanes(ls.Left)
	clone.Center = cloneLanes(ls.Center)
	clone.Right = cloneLanes(ls.Right)
	for k, v := range ls.LaneMap {
		clone.LaneMap[k] = v
	}
	return clone
}

func cloneLanes(lanes []*Lane) []*Lane {
	out := make([]*Lane, len(lanes))
	for i, l := range lanes {
		cp := *l
		cp.Widths = append([]WidthEntry(nil), l.Widths...)
		cp.Speeds = append([]SpeedEntry(nil), l.Speeds...)
		out[i] = &cp
	}
	return out
}
