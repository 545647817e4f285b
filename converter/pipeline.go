package converter

import "github.com/zetsnotdead/hand-converter/types"

// Stage applies one rule to every line inside one region
type Stage struct {
	Rule   *Rule
	Region types.RegionKind
}

// DefaultStages is the conversion program run after the header, in order
var DefaultStages = []Stage{
	{Rule: StacksRule, Region: types.RegionPreflop},
	{Rule: BlindsRule, Region: types.RegionPreflop},
	{Rule: AntesRule, Region: types.RegionPreflop},
	{Rule: RaisesRule, Region: types.RegionPostflop},
	{Rule: BetsOrCallsRule, Region: types.RegionPostflop},
	{Rule: CollectedRule, Region: types.RegionPostflop},
	{Rule: UncalledRule, Region: types.RegionPostflop},
}

// SummaryStages rescale the pot lines of the summary block
var SummaryStages = []Stage{
	{Rule: TotalPotRule, Region: types.RegionSummary},
	{Rule: MainPotRule, Region: types.RegionSummary},
	{Rule: SidePotRule, Region: types.RegionSummary},
	{Rule: RakeRule, Region: types.RegionSummary},
	{Rule: SeatWonRule, Region: types.RegionSummary},
}

// RunStage rescales the lines of the stage's region in place and returns
// the number of rewritten amounts
func RunStage(lines []string, stage Stage, regions types.HandRegions, scale Scale) int {
	if !scale.Valid() {
		return 0
	}
	region := regions.Get(stage.Region)

	n := 0
	for i := range lines {
		if !region.Contains(i) {
			continue
		}
		var c int
		lines[i], c = RescaleLine(lines[i], stage.Rule, scale)
		n += c
	}
	return n
}

// RunStages runs stages in order over lines
func RunStages(lines []string, stages []Stage, regions types.HandRegions, scale Scale) int {
	n := 0
	for _, stage := range stages {
		n += RunStage(lines, stage, regions, scale)
	}
	return n
}
