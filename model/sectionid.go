package model

import "strconv"

// SectionBaseID returns the stable edge-id base for the lane section at idx
// among a road's sections: the bare road id when the road has a single
// section, else the road id suffixed with the section's start arclength so
// each split section gets a distinct, traceable id.
func SectionBaseID(roadID string, sections []*LaneSection, idx int) string {
	if len(sections) <= 1 {
		return roadID
	}
	return roadID + "." + strconv.FormatFloat(sections[idx].S, 'f', -1, 64)
}
