package converter

import (
	"reflect"
	"testing"
)

func TestSplitHands(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"single", "a\nb", []string{"a\nb"}},
		{"blank separated", "a\nb\n\n\nc\nd\n", []string{"a\nb", "c\nd"}},
		{"whitespace separator", "a\n   \nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n\r\nc\r\n", []string{"a\r\nb", "c"}},
		{"bom", "\ufeffa\nb", []string{"a\nb"}},
		{"leading blank lines", "\n\na", []string{"a"}},
		{"empty", "", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SplitHands(c.text); !reflect.DeepEqual(got, c.want) {
				t.Errorf("SplitHands(%q) = %q, want %q", c.text, got, c.want)
			}
		})
	}
}

func TestJoinHands(t *testing.T) {
	cases := []struct {
		hands []string
		want  string
	}{
		{nil, ""},
		{[]string{"a\nb", "c"}, "a\nb\n\nc\n"},
		{[]string{"a\r\nb", "c"}, "a\r\nb\r\n\r\nc\r\n"},
	}
	for _, c := range cases {
		if got := JoinHands(c.hands); got != c.want {
			t.Errorf("JoinHands(%q) = %q, want %q", c.hands, got, c.want)
		}
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	text := "h1 a\nh1 b\n\nh2 a\nh2 b\n"
	if got := JoinHands(SplitHands(text)); got != text {
		t.Errorf("round trip = %q, want %q", got, text)
	}
}

func TestParseHandFileKeepsLayout(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		hands []string
	}{
		{"three blank lines", "h1 a\nh1 b\n\n\n\nh2 a\n\n\n\n", []string{"h1 a\nh1 b", "h2 a"}},
		{"crlf", "h1\r\n\r\n\r\nh2\r\n", []string{"h1", "h2"}},
		{"bom and leading blanks", "\ufeff\n\nh1\nx", []string{"h1\nx"}},
		{"bom on header", "\ufeffh1\n", []string{"h1"}},
		{"no trailing newline", "h1\n\nh2", []string{"h1", "h2"}},
		{"blank only", "\n \n", nil},
		{"empty", "", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := ParseHandFile(c.text)
			if !reflect.DeepEqual(f.Hands, c.hands) {
				t.Errorf("ParseHandFile(%q).Hands = %q, want %q", c.text, f.Hands, c.hands)
			}
			if got := f.String(); got != c.text {
				t.Errorf("ParseHandFile(%q).String() = %q", c.text, got)
			}
		})
	}
}

func TestHandFileWithHands(t *testing.T) {
	f := ParseHandFile("a\n\n\n\nb\n")
	if got, want := f.WithHands([]string{"A", "B"}).String(), "A\n\n\n\nB\n"; got != want {
		t.Errorf("WithHands().String() = %q, want %q", got, want)
	}
	if got, want := (HandFile{Hands: []string{"A", "B"}}).String(), "A\n\nB\n"; got != want {
		t.Errorf("String() without gaps = %q, want %q", got, want)
	}
}
