package converter

import (
	"strings"
)

const bom = "\ufeff"

// isBlank reports whether a line separates two hands
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// HandFile is a hand-history file split into hands. The text between hands
// is kept so the file can be written back with its original layout.
type HandFile struct {
	Hands []string
	// Gaps[i] precedes Hands[i]; Gaps[len(Hands)] follows the last hand.
	// Nil when the file was not parsed from text.
	Gaps []string
}

// ParseHandFile splits text into hands separated by one or more blank lines.
// Line endings inside a hand are kept as-is; the trailing "\r" of a hand's
// last line and a leading UTF-8 BOM go to the surrounding gaps.
func ParseHandFile(text string) HandFile {
	var f HandFile
	gapStart, handStart, handEnd := 0, -1, 0

	closeHand := func() {
		f.Hands = append(f.Hands, text[handStart:handEnd])
		gapStart, handStart = handEnd, -1
	}

	for pos := 0; pos <= len(text); {
		end := strings.IndexByte(text[pos:], '\n')
		next := len(text) + 1
		if end < 0 {
			end = len(text)
		} else {
			end += pos
			next = end + 1
		}

		start, line := pos, text[pos:end]
		if pos == 0 && strings.HasPrefix(line, bom) {
			start += len(bom)
			line = line[len(bom):]
		}

		if isBlank(line) {
			if handStart >= 0 {
				closeHand()
			}
		} else {
			if handStart < 0 {
				f.Gaps = append(f.Gaps, text[gapStart:start])
				handStart = start
			}
			handEnd = end
			if strings.HasSuffix(line, "\r") {
				handEnd--
			}
		}
		pos = next
	}
	if handStart >= 0 {
		closeHand()
	}
	f.Gaps = append(f.Gaps, text[gapStart:])
	return f
}

// WithHands returns a copy of f holding hands in place of f.Hands
func (f HandFile) WithHands(hands []string) HandFile {
	return HandFile{Hands: hands, Gaps: f.Gaps}
}

// String writes the hands back between the original gaps. Without gaps
// it falls back to JoinHands.
func (f HandFile) String() string {
	if len(f.Gaps) != len(f.Hands)+1 {
		return JoinHands(f.Hands)
	}
	var b strings.Builder
	for i, h := range f.Hands {
		b.WriteString(f.Gaps[i])
		b.WriteString(h)
	}
	b.WriteString(f.Gaps[len(f.Hands)])
	return b.String()
}

// SplitHands splits a hand-history file into hands. Hands are separated by
// one or more blank lines. Line endings inside a hand are kept as-is.
func SplitHands(text string) []string {
	return ParseHandFile(text).Hands
}

// JoinHands writes hands back separated by a blank line, using CRLF if the
// first hand does
func JoinHands(hands []string) string {
	if len(hands) == 0 {
		return ""
	}
	nl := "\n"
	if strings.Contains(hands[0], "\r\n") {
		nl = "\r\n"
	}
	return strings.Join(hands, nl+nl) + nl
}
