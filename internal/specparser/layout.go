package specparser

import (
	"strings"
	"unicode"
)

// field is a run of text in a layout line; start and end are rune offsets.
type field struct {
	start int
	end   int
	text  string
}

func (f field) center() float64 { return float64(f.start+f.end) / 2 }

// splitFields cuts a layout line into cells. Two or more spaces (or a tab)
// separate cells; a single space belongs to the cell text.
func splitFields(line string) []field {
	runes := []rune(strings.ReplaceAll(line, "\u00a0", " "))
	var fields []field

	start := -1
	spaces := 0
	flush := func(end int) {
		if start >= 0 {
			fields = append(fields, field{start: start, end: end, text: string(runes[start:end])})
			start = -1
		}
	}

	for i, r := range runes {
		switch {
		case r == '\t':
			flush(i - spaces)
			spaces = 0
		case r == ' ':
			spaces++
			if spaces == 2 {
				flush(i - 1)
			}
		default:
			if start < 0 {
				start = i
			}
			spaces = 0
		}
	}
	flush(len(runes) - spaces)

	return fields
}

// column is a table column found in the header block.
type column struct {
	start int
	end   int
	title string
}

func (c column) center() float64 { return float64(c.start+c.end) / 2 }

func overlap(aStart, aEnd, bStart, bEnd int) int {
	lo := max(aStart, bStart)
	hi := min(aEnd, bEnd)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// nearestColumn returns the column a field belongs to: the one it overlaps most,
// or failing that the one whose centre is closest. ok is false when the nearest
// centre is further than maxDistance runes away.
func nearestColumn(cols []column, f field, maxDistance float64) (idx int, ok bool) {
	best, bestOverlap := -1, 0
	for i, c := range cols {
		if o := overlap(c.start, c.end, f.start, f.end); o > bestOverlap {
			best, bestOverlap = i, o
		}
	}
	if best >= 0 {
		return best, true
	}

	bestDist := -1.0
	for i, c := range cols {
		d := c.center() - f.center()
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || (maxDistance > 0 && bestDist > maxDistance) {
		return best, false
	}
	return best, true
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// isNumberingRow matches the "1  2  3  4" line printed under many specification headers.
func isNumberingRow(fields []field) bool {
	if len(fields) < 3 {
		return false
	}
	for _, f := range fields {
		for _, r := range f.text {
			if !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}

// squash collapses inner whitespace runs to single spaces.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
