package document

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ElisionMarker separates the retained head and tail of a truncated document.
const ElisionMarker = "\n\n...[middle section truncated for length]...\n\n"

const (
	headShare = 0.6
	tailShare = 0.2
)

// ErrEmptyDocument is returned when a document has no content after normalization.
var ErrEmptyDocument = errors.New("document is empty")

// Document is an ingested text. Full is used by local heuristics, Truncated is
// the copy handed to the extraction backend.
type Document struct {
	Full         string
	Truncated    string
	WasTruncated bool
	Words        int
	Chars        int
}

// Preprocess normalizes raw text and prepares the truncated extraction copy.
// A ceiling <= 0 disables truncation.
func Preprocess(raw string, ceiling int) (*Document, error) {
	full := Normalize(raw)
	if full == "" {
		return nil, ErrEmptyDocument
	}

	truncated, cut := SmartTruncate(full, ceiling)

	return &Document{
		Full:         full,
		Truncated:    truncated,
		WasTruncated: cut,
		Words:        len(strings.Fields(full)),
		Chars:        utf8.RuneCountInString(full),
	}, nil
}

// Normalize unifies line endings and whitespace without touching content.
func Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// strings.Fields also splits on tabs and NBSP.
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// SmartTruncate keeps the first 60% and the last 20% of the ceiling, joined by
// ElisionMarker. The boolean reports whether anything was cut.
func SmartTruncate(text string, ceiling int) (string, bool) {
	if ceiling <= 0 {
		return text, false
	}

	runes := []rune(text)
	if len(runes) <= ceiling {
		return text, false
	}

	head := int(float64(ceiling) * headShare)
	tail := int(float64(ceiling) * tailShare)

	var b strings.Builder
	b.Grow(head*utf8.UTFMax + len(ElisionMarker) + tail*utf8.UTFMax)
	b.WriteString(string(runes[:head]))
	b.WriteString(ElisionMarker)
	b.WriteString(string(runes[len(runes)-tail:]))

	return b.String(), true
}
