package document

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Index is a lowercased, whitespace-collapsed view of a text used for repeated
// phrase counting.
type Index struct {
	text string
}

// NewIndex prepares text for Count calls.
func NewIndex(text string) Index {
	return Index{text: fold(text)}
}

// Occurrences counts case-insensitive, boundary-aware occurrences of phrase in text.
func Occurrences(text, phrase string) int {
	return NewIndex(text).Count(phrase)
}

// Contains reports whether phrase occurs in text at least once.
func Contains(text, phrase string) bool {
	return NewIndex(text).Count(phrase) > 0
}

// Count returns the number of non-overlapping occurrences of phrase. A match
// must not be glued to a neighbouring word character, so "art" is not found
// inside "party" and "c" is not found inside "c++".
func (i Index) Count(phrase string) int {
	count := 0
	i.scan(phrase, func(int) bool {
		count++
		return true
	})
	return count
}

// CountAny counts occurrences of any of phrases, never counting the same span
// twice. Longer phrases claim their spans first, so "react.js" is one mention
// and not also a mention of "react".
func (i Index) CountAny(phrases []string) int {
	needles := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = fold(p); p != "" {
			needles = append(needles, p)
		}
	}
	sort.SliceStable(needles, func(a, b int) bool { return len(needles[a]) > len(needles[b]) })

	type span struct{ from, to int }
	var taken []span
	count := 0
	for _, needle := range needles {
		i.scan(needle, func(start int) bool {
			end := start + len(needle)
			for _, t := range taken {
				if start < t.to && t.from < end {
					return true
				}
			}
			taken = append(taken, span{start, end})
			count++
			return true
		})
	}
	return count
}

// First returns the offset of the first occurrence of phrase in the folded
// text, or -1.
func (i Index) First(phrase string) int {
	first := -1
	i.scan(phrase, func(start int) bool {
		first = start
		return false
	})
	return first
}

// Len is the length of the folded text, comparable with First offsets.
func (i Index) Len() int {
	return len(i.text)
}

func (i Index) scan(phrase string, yield func(start int) bool) {
	needle := fold(phrase)
	if needle == "" {
		return
	}

	first, _ := utf8.DecodeRuneInString(needle)
	last, _ := utf8.DecodeLastRuneInString(needle)
	checkStart := isWordRune(first)
	checkEnd := isWordRune(last)

	offset := 0
	for offset < len(i.text) {
		idx := strings.Index(i.text[offset:], needle)
		if idx < 0 {
			return
		}
		start := offset + idx
		end := start + len(needle)

		ok := true
		if checkStart && start > 0 {
			prev, _ := utf8.DecodeLastRuneInString(i.text[:start])
			ok = !isWordRune(prev)
		}
		if ok && checkEnd && end < len(i.text) {
			next, _ := utf8.DecodeRuneInString(i.text[end:])
			ok = !isWordRune(next)
		}

		if ok {
			if !yield(start) {
				return
			}
			offset = end
			continue
		}
		_, size := utf8.DecodeRuneInString(i.text[start:])
		offset = start + size
	}
}

// Lines returns the trimmed, non-empty lines of text.
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Words splits text into lowercase alphanumeric tokens.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// '+' and '#' belong to words like c++ and c#.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '+' || r == '#'
}
