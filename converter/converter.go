package converter

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/zetsnotdead/hand-converter/types"
)

// Options configures a Converter
type Options struct {
	// SummaryPots also rescales the pot and winnings lines of the summary
	SummaryPots bool
}

// Converter rewrites hands with a fixed stage list. It holds no per-hand
// state and is safe for concurrent use.
type Converter struct {
	stages []Stage
}

// New creates a Converter
func New(opts Options) *Converter {
	stages := append([]Stage(nil), DefaultStages...)
	if opts.SummaryPots {
		stages = append(stages, SummaryStages...)
	}
	return &Converter{stages: stages}
}

// Default converts with DefaultStages only
var Default = New(Options{})

// Stages returns the stage list run after the header
func (c *Converter) Stages() []Stage {
	return append([]Stage(nil), c.stages...)
}

// Convert rewrites a single hand. The first line is the header; if it has no
// stakes, every other line is returned unchanged and Scaled is false.
func (c *Converter) Convert(hand string) types.HandResult {
	lines := strings.Split(hand, "\n")
	regions := DetectRegions(lines)

	scale, header := DeriveScale(lines[0])
	if !scale.Valid() {
		return types.HandResult{Text: hand, Regions: regions}
	}
	lines[0] = header

	rewrites := RunStages(lines, c.stages, regions, scale)

	return types.HandResult{
		Text:     strings.Join(lines, "\n"),
		Scale:    float64(scale),
		Scaled:   true,
		Regions:  regions,
		Rewrites: rewrites,
	}
}

// ConvertHands converts every hand, preserving order
func (c *Converter) ConvertHands(hands []string) []string {
	result := make([]string, len(hands))
	for i, hand := range hands {
		result[i] = c.Convert(hand).Text
	}
	return result
}

// ConvertHandsConcurrent converts hands on up to workers goroutines. Results
// keep input order. onDone, if set, is called after each hand completes with
// the number completed so far; calls are serialized but not ordered by index.
func (c *Converter) ConvertHandsConcurrent(ctx context.Context, hands []string, workers int, onDone func(done, total int)) ([]types.HandResult, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]types.HandResult, len(hands))
	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range hands {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.Convert(hands[i])
			if onDone != nil {
				mu.Lock()
				done++
				onDone(done, len(hands))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ConvertHand rewrites a single hand with the default stages
func ConvertHand(hand string) string {
	return Default.Convert(hand).Text
}

// ConvertHandResult is ConvertHand with the scale, regions and rewrite count
func ConvertHandResult(hand string) types.HandResult {
	return Default.Convert(hand)
}

// ConvertHands rewrites many hands with the default stages
func ConvertHands(hands []string) []string {
	return Default.ConvertHands(hands)
}
