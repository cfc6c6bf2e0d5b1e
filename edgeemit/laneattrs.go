package edgeemit

import (
	"math"
	"sort"

	"github.com/fib-lab/opendrive-importer/catalogue"
	"github.com/fib-lab/opendrive-importer/model"

	"github.com/samber/lo"
)

// buildLanes resolves sec's lanes on the given side into the compact,
// index-ordered slice the Edge Emitter attaches to a forward/backward
// edge. Lanes absent from the section's LaneMap (i.e. discarded during
// reshaping) are skipped.
func (e *Emitter) buildLanes(sec *model.LaneSection, side model.Side) []model.EdgeLane {
	kept := lo.Filter(sec.LanesOnSide(side), func(lane *model.Lane, _ int) bool {
		_, ok := sec.LaneMap[lane.ID]
		return ok
	})
	out := lo.Map(kept, func(lane *model.Lane, _ int) model.EdgeLane {
		el := e.resolveLaneAttributes(lane)
		el.Index = sec.LaneMap[lane.ID]
		el.SourceID = lane.ID
		return el
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// resolveLaneAttributes computes a lane's effective speed, width and
// permissions: speed falls back to the type default, width comes
// from the type catalogue unless an explicit width was resolved by the
// Reshaper and width import is enabled, then quantises and retries a
// one-step increase — to absorb rounding that quantised a lane just under
// minWidth — before downgrading a narrow passenger-capable lane's
// permissions.
func (e *Emitter) resolveLaneAttributes(lane *model.Lane) model.EdgeLane {
	entry := catalogue.Default
	if e.Catalogue != nil {
		if found, ok := e.Catalogue.Lookup(lane.Type); ok {
			entry = found
		}
	}

	speed := lane.EffectiveSpeed
	if speed <= 0 {
		speed = entry.DefaultSpeed
	}

	width := entry.DefaultWidth
	widthImportEnabled := e.Config == nil || !e.Config.All.IgnoreWidths
	if widthImportEnabled && lane.EffectiveWidth > 0 {
		width = lane.EffectiveWidth
	}
	width = e.quantizeWidth(width, entry)

	permissions := entry.Permissions
	minWidth := 0.0
	if e.Config != nil {
		minWidth = e.Config.All.MinWidth
	}
	if permissions&model.PermDriving != 0 && minWidth > 0 && width < minWidth {
		if entry.WidthResolution > 0 {
			if retry := e.quantizeWidth(width+entry.WidthResolution, entry); retry >= minWidth {
				width = retry
			} else {
				permissions = model.NarrowDowngradePermissions
			}
		} else {
			permissions = model.NarrowDowngradePermissions
		}
	}

	return model.EdgeLane{Type: lane.Type, Speed: speed, Width: width, Permissions: permissions}
}

func (e *Emitter) quantizeWidth(width float64, entry catalogue.Entry) float64 {
	if entry.WidthResolution > 0 {
		width = math.Round(width/entry.WidthResolution) * entry.WidthResolution
	}
	if entry.MaxWidth > 0 && width > entry.MaxWidth {
		width = entry.MaxWidth
	}
	return width
}
