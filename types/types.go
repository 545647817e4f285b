// Package types defines the data structures used by the hand converter.
package types

// RegionKind names a structural region of a hand
type RegionKind string

const (
	RegionPreflop  RegionKind = "preflop"
	RegionPostflop RegionKind = "postflop"
	RegionSummary  RegionKind = "summary"
)

// Region is an inclusive line-index range of a hand.
// An Empty region contains no lines even though Start == End.
type Region struct {
	Start int  `json:"start"`
	End   int  `json:"end"`
	Empty bool `json:"empty,omitempty"`
}

// Contains reports whether line index i falls inside the region
func (r Region) Contains(i int) bool {
	return !r.Empty && i >= r.Start && i <= r.End
}

// HandRegions holds the three regions detected in one hand
type HandRegions struct {
	Preflop  Region `json:"preflop"`
	Postflop Region `json:"postflop"`
	Summary  Region `json:"summary"`
}

// Get returns the region for a kind. Unknown kinds yield an empty region.
func (h HandRegions) Get(kind RegionKind) Region {
	switch kind {
	case RegionPreflop:
		return h.Preflop
	case RegionPostflop:
		return h.Postflop
	case RegionSummary:
		return h.Summary
	}
	return Region{Empty: true}
}

// HandResult is the outcome of converting a single hand
type HandResult struct {
	Text     string      `json:"-"`
	Scale    float64     `json:"scale,omitempty"`
	Scaled   bool        `json:"scaled"`
	Regions  HandRegions `json:"regions"`
	Rewrites int         `json:"rewrites"`
}

// FileReport summarizes the conversion of one input file
type FileReport struct {
	Name      string `json:"name"`
	Hands     int    `json:"hands"`
	Unscaled  []int  `json:"unscaledHands,omitempty"`
	Rewrites  int    `json:"rewrites"`
	OutputURI string `json:"outputUri,omitempty"`
}

// ConversionReport is uploaded alongside converted hands for a job
type ConversionReport struct {
	JobID      string       `json:"jobId,omitempty"`
	TotalHands int          `json:"totalHands"`
	Unscaled   int          `json:"unscaledHands"`
	Files      []FileReport `json:"files"`
}

// Add appends a file report and updates the totals
func (r *ConversionReport) Add(f FileReport) {
	r.Files = append(r.Files, f)
	r.TotalHands += f.Hands
	r.Unscaled += len(f.Unscaled)
}

// JobData represents job information fetched from the API
type JobData struct {
	ID          string `json:"id"`
	Files       int    `json:"files"`
	Parallelism int    `json:"parallelism"`
	Status      string `json:"status"`
}
