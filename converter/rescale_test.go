package converter

import "testing"

func TestScaleApply(t *testing.T) {
	cases := []struct {
		text  string
		scale Scale
		want  string
		ok    bool
	}{
		{"100", 100, "1.00", true},
		{"719", 100, "7.19", true},
		{"982.25", 100, "9.82", true},
		{"50", 100, "0.50", true},
		{"1", 3, "0.33", true},
		{"2", 3, "0.67", true},
		{"0.5", 1, "0.50", true},
		{"0", 2, "0.00", true},
		{"1", 8, "0.13", true},
		{"5", 8, "0.63", true},
		{"3", 8, "0.38", true},
		{"0.25", 2, "0.13", true},
		{"100", 0, "100", false},
		{"abc", 2, "abc", false},
	}
	for _, c := range cases {
		got, ok := c.scale.Apply(c.text)
		if got != c.want || ok != c.ok {
			t.Errorf("Scale(%v).Apply(%q) = %q, %v, want %q, %v", float64(c.scale), c.text, got, ok, c.want, c.ok)
		}
	}
}

func TestRuleMatchAlternation(t *testing.T) {
	cases := []struct {
		rule  *Rule
		line  string
		group int
		text  string
	}{
		{BlindsRule, "Alice: posts small blind $50", 1, "50"},
		{BlindsRule, "Bob: posts big blind $100", 2, "100"},
		{BlindsRule, "Carol: posts small & big blinds $150", 3, "150"},
		{BlindsRule, "Carol: posts big & small blind $150", 3, "150"},
		{BetsOrCallsRule, "Bob: bets $80.42", 1, "80.42"},
		{BetsOrCallsRule, "Bob: calls $40", 2, "40"},
	}
	for _, c := range cases {
		m, ok := c.rule.Match(c.line)
		if !ok {
			t.Errorf("%s.Match(%q) found no match", c.rule.Name, c.line)
			continue
		}
		if len(m.Amounts) != 1 {
			t.Errorf("%s.Match(%q) = %d amounts, want 1", c.rule.Name, c.line, len(m.Amounts))
			continue
		}
		if a := m.Amounts[0]; a.Group != c.group || a.Text != c.text {
			t.Errorf("%s.Match(%q) = group %d %q, want group %d %q", c.rule.Name, c.line, a.Group, a.Text, c.group, c.text)
		}
	}
}

func TestRescaleLine(t *testing.T) {
	cases := []struct {
		name  string
		rule  *Rule
		line  string
		scale Scale
		want  string
		n     int
	}{
		{"big blind", BlindsRule, "Bob: posts big blind $100", 100, "Bob: posts big blind $1.00", 1},
		{"small blind", BlindsRule, "Alice: posts small blind $50", 100, "Alice: posts small blind $0.50", 1},
		{"combined blind", BlindsRule, "Carol: posts small & big blinds $3", 2, "Carol: posts small & big blinds $1.50", 1},
		{"raise", RaisesRule, "Alice: raises $719 to $982.25", 100, "Alice: raises $7.19 to $9.82", 2},
		{"raise equal amounts", RaisesRule, "Alice: raises $100 to $100", 100, "Alice: raises $1.00 to $1.00", 2},
		{"raise all-in", RaisesRule, "Alice: raises $300 to $400 and is all-in", 100, "Alice: raises $3.00 to $4.00 and is all-in", 2},
		{"bet", BetsOrCallsRule, "Bob: bets $80", 20, "Bob: bets $4.00", 1},
		{"call", BetsOrCallsRule, "Bob: calls $40", 20, "Bob: calls $2.00", 1},
		{"stack", StacksRule, "Seat 1: Alice ($5050 in chips)", 100, "Seat 1: Alice ($50.50 in chips)", 1},
		{"stack single digit", StacksRule, "Seat 1: Alice ($5 in chips)", 2, "Seat 1: Alice ($2.50 in chips)", 1},
		{"ante", AntesRule, "Alice: posts the ante $10", 100, "Alice: posts the ante $0.10", 1},
		{"collected", CollectedRule, "Bob collected $2164 from pot", 100, "Bob collected $21.64 from pot", 1},
		{"uncalled", UncalledRule, "Uncalled bet ($2000) returned to Bob", 100, "Uncalled bet ($20.00) returned to Bob", 1},
		{"no match", RaisesRule, "Bob: folds", 100, "Bob: folds", 0},
		{"invalid scale", BlindsRule, "Bob: posts big blind $100", 0, "Bob: posts big blind $100", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, n := RescaleLine(c.line, c.rule, c.scale)
			if got != c.want || n != c.n {
				t.Errorf("RescaleLine(%q) = %q, %d, want %q, %d", c.line, got, n, c.want, c.n)
			}
		})
	}
}

func TestRescaleLineOnlyTouchesMatch(t *testing.T) {
	// The seat number equals the raise amount but lies outside the match
	line := "Seat 10 Hero10: raises $10 to $100"
	got, _ := RescaleLine(line, RaisesRule, 100)
	want := "Seat 10 Hero10: raises $0.10 to $1.00"
	if got != want {
		t.Errorf("RescaleLine(%q) = %q, want %q", line, got, want)
	}
}

func TestRescaleLineFirstMatchOnly(t *testing.T) {
	line := "Bob: bets $10 Bob: bets $20"
	got, n := RescaleLine(line, BetsOrCallsRule, 10)
	want := "Bob: bets $1.00 Bob: bets $20"
	if got != want || n != 1 {
		t.Errorf("RescaleLine(%q) = %q, %d, want %q, 1", line, got, n, want)
	}
}

func TestRescaleLineAllMatches(t *testing.T) {
	line := "Total pot $300 Main pot $200. Side pot-1 $60. Side pot-2 $40. | Rake $3"
	got, n := RescaleLine(line, SidePotRule, 100)
	want := "Total pot $300 Main pot $200. Side pot-1 $0.60. Side pot-2 $0.40. | Rake $3"
	if got != want || n != 2 {
		t.Errorf("RescaleLine(%q) = %q, %d, want %q, 2", line, got, n, want)
	}
}
