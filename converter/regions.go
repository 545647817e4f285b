package converter

import (
	"strings"

	"github.com/zetsnotdead/hand-converter/types"
)

// PreflopStart skips the header and table lines
const PreflopStart = 2

// DetectRegions finds the preflop, postflop and summary regions of a hand.
// A region whose bounding marker is missing comes back Empty. The hole-cards
// marker is only looked for after the table line and the summary marker only
// after the hole-cards marker, so region bounds never decrease.
func DetectRegions(lines []string) types.HandRegions {
	hole := indexOfMarker(lines, HoleCardsMarker, PreflopStart)
	summary := indexOfMarker(lines, SummaryMarker, max(hole, PreflopStart))
	last := len(lines) - 1

	var r types.HandRegions

	if hole >= 0 {
		r.Preflop = types.Region{Start: PreflopStart, End: hole}
	} else {
		r.Preflop = emptyRegion(PreflopStart)
	}

	if hole >= 0 && summary >= 0 {
		r.Postflop = types.Region{Start: hole, End: summary}
	} else {
		r.Postflop = emptyRegion(r.Preflop.End)
	}

	if summary >= 0 {
		r.Summary = types.Region{Start: summary, End: last}
	} else {
		r.Summary = emptyRegion(max(last, r.Postflop.End))
	}

	return r
}

func emptyRegion(at int) types.Region {
	return types.Region{Start: at, End: at, Empty: true}
}

// indexOfMarker returns the first line at or after from containing marker, or -1
func indexOfMarker(lines []string, marker string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.Contains(lines[i], marker) {
			return i
		}
	}
	return -1
}
