// Package converter rewrites poker hand histories to a normalized 0.5/1 stake
package converter

import "regexp"

// amount matches a bare integer or a dot-decimal numeral
const amount = `(\d+(?:\.\d+)?)`

// Rule is a pattern plus the capture groups that hold money
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	// Money lists the capture group indices holding amounts.
	// For alternation patterns at most one of them participates in a match.
	Money []int
	// All rewrites every match on the line instead of only the first
	All bool
}

func newRule(name, expr string, all bool) *Rule {
	re := regexp.MustCompile(expr)
	money := make([]int, re.NumSubexp())
	for i := range money {
		money[i] = i + 1
	}
	return &Rule{Name: name, Pattern: re, Money: money, All: all}
}

// Header markers
const (
	HoleCardsMarker = "*** HOLE CARDS ***"
	SummaryMarker   = "*** SUMMARY ***"
)

// Stakes header, ex: ($50/$100 USD) or ($50/$100)
// Group 1: small blind, group 2: big blind
var StakesRule = newRule("stakes", `\(\$`+amount+`/\$`+amount+`(?: USD)?\)`, false)

// Action patterns
var (
	// ($783.50 in chips)
	StacksRule = newRule("stacks", `\(\$`+amount+` in chips`, false)

	// posts small blind $1 | posts big blind $2 | posts small & big blinds $3
	BlindsRule = newRule("blinds",
		`posts small blind \$`+amount+
			`|posts big blind \$`+amount+
			`|posts (?:small & big blinds|big & small blind) \$`+amount, false)

	// posts the ante $2
	AntesRule = newRule("antes", `posts the ante \$`+amount, false)

	// raises $719 to $982.25
	RaisesRule = newRule("raises", `raises \$`+amount+` to \$`+amount, false)

	// bets $80.42 | calls $40
	BetsOrCallsRule = newRule("bets_calls", `bets \$`+amount+`|calls \$`+amount, false)

	// collected $2424.24 from pot
	CollectedRule = newRule("collected", `collected \$`+amount, false)

	// Uncalled bet ($25) returned to Hero
	UncalledRule = newRule("uncalled", `Uncalled bet \(\$`+amount+`\) returned`, false)
)

// Summary patterns. These are not part of the default pipeline.
var (
	// Total pot $300 | Rake $3
	TotalPotRule = newRule("total_pot", `Total pot \$`+amount, true)
	// Main pot $1205.40
	MainPotRule = newRule("main_pot", `Main pot \$`+amount, true)
	// Side pot $80 | Side pot-2 $80
	SidePotRule = newRule("side_pot", `Side pot(?:-\d+)? \$`+amount, true)
	RakeRule    = newRule("rake", `Rake \$`+amount, true)
	// showed [Ah Ad] and won ($1220) | collected ($40)
	SeatWonRule = newRule("seat_won", `(?:won|collected) \(\$`+amount+`\)`, true)
)
