package converter

import (
	"sort"
	"strings"
)

// Amount is one monetary capture inside a line
type Amount struct {
	Group int
	Start int
	End   int
	Text  string
}

// Match is a single rule match. Amounts holds only the groups that
// participated, ordered by position.
type Match struct {
	Start   int
	End     int
	Amounts []Amount
}

// Match returns the first match of the rule in line
func (r *Rule) Match(line string) (Match, bool) {
	loc := r.Pattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return Match{}, false
	}
	return r.build(line, loc), true
}

// MatchAll returns every non-overlapping match of the rule in line
func (r *Rule) MatchAll(line string) []Match {
	locs := r.Pattern.FindAllStringSubmatchIndex(line, -1)
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, r.build(line, loc))
	}
	return matches
}

func (r *Rule) build(line string, loc []int) Match {
	m := Match{Start: loc[0], End: loc[1]}
	for _, g := range r.Money {
		start, end := loc[2*g], loc[2*g+1]
		// Groups from an alternative branch that did not match report -1
		if start < 0 || end <= start {
			continue
		}
		m.Amounts = append(m.Amounts, Amount{Group: g, Start: start, End: end, Text: line[start:end]})
	}
	sort.Slice(m.Amounts, func(i, j int) bool { return m.Amounts[i].Start < m.Amounts[j].Start })
	return m
}

// RescaleLine rewrites the money captured by rule in line, dividing each
// amount by scale. Lines without a match, or an invalid scale, pass through
// unchanged. The second return value counts rewritten amounts.
func RescaleLine(line string, rule *Rule, scale Scale) (string, int) {
	if !scale.Valid() {
		return line, 0
	}

	var matches []Match
	if rule.All {
		matches = rule.MatchAll(line)
	} else if m, ok := rule.Match(line); ok {
		matches = []Match{m}
	}
	if len(matches) == 0 {
		return line, 0
	}

	var b strings.Builder
	b.Grow(len(line) + 8)
	last, n := 0, 0
	for _, m := range matches {
		for _, a := range m.Amounts {
			scaled, ok := scale.Apply(a.Text)
			if !ok {
				continue
			}
			b.WriteString(line[last:a.Start])
			b.WriteString(scaled)
			last = a.End
			n++
		}
	}
	if n == 0 {
		return line, 0
	}
	b.WriteString(line[last:])
	return b.String(), n
}
