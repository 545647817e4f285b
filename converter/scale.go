package converter

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Normalized stakes written into the header
const (
	NormalizedSmallBlind = "0.50"
	NormalizedBigBlind   = "1"
)

// Scale is the divisor for one hand: the original big blind.
// The zero value means no stakes header was found.
type Scale float64

// Valid reports whether the scale can be divided by
func (s Scale) Valid() bool {
	f := float64(s)
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Apply divides the numeral text by the scale and formats it with two decimals
func (s Scale) Apply(text string) (string, bool) {
	if !s.Valid() {
		return text, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text, false
	}
	out := v / float64(s)
	if math.IsInf(out, 0) || math.IsNaN(out) {
		return text, false
	}
	return formatCents(out), true
}

// formatCents formats v with two decimals. A value exactly halfway between
// two cents rounds away from zero; FormatFloat alone would round it to even.
func formatCents(v float64) string {
	if isHalfCent(v) {
		v = math.Nextafter(v, math.Copysign(math.Inf(1), v))
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// isHalfCent reports whether v*100 has a fractional part of exactly one half
func isHalfCent(v float64) bool {
	x := new(big.Float).SetPrec(128).SetFloat64(math.Abs(v))
	x.Mul(x, big.NewFloat(100))
	whole, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(128).SetInt(whole)
	frac.Sub(x, frac)
	return frac.Cmp(big.NewFloat(0.5)) == 0
}

// DeriveScale reads the stakes from the header line and rewrites them to the
// normalized stakes. Without a stakes match it returns a zero Scale and the
// header unchanged.
func DeriveScale(header string) (Scale, string) {
	m, ok := StakesRule.Match(header)
	if !ok || len(m.Amounts) != 2 {
		return 0, header
	}
	sb, bb := m.Amounts[0], m.Amounts[1]

	v, err := strconv.ParseFloat(bb.Text, 64)
	if err != nil {
		return 0, header
	}
	scale := Scale(v)
	if !scale.Valid() {
		return 0, header
	}

	var b strings.Builder
	b.WriteString(header[:sb.Start])
	b.WriteString(NormalizedSmallBlind)
	b.WriteString(header[sb.End:bb.Start])
	b.WriteString(NormalizedBigBlind)
	b.WriteString(header[bb.End:])
	return scale, b.String()
}
