package specparser

import (
	"sort"
	"strings"
)

const (
	// headerMarker identifies the header line of a specification table.
	headerMarker = "Наименование"
	// headerSpan is how many lines above and below the marker line may hold
	// wrapped header text.
	headerSpan = 2
	// A header fragment further than this from every column starts a new column.
	headerJoinDistance = 8
)

// table is the column layout of one specification table.
type table struct {
	columns      []column
	name         int
	quantity     int
	manufacturer int
	// firstData is the index of the first line after the header block.
	firstData int
}

// detectTable finds the specification header on a page. Columns are taken from
// the line containing "Наименование" and extended with wrapped header text
// directly above and below it.
func detectTable(lines []string) (*table, bool) {
	markerIdx := -1
	for i, line := range lines {
		if strings.Contains(line, headerMarker) {
			markerIdx = i
			break
		}
	}
	if markerIdx < 0 {
		return nil, false
	}

	var cols []column
	for _, f := range splitFields(lines[markerIdx]) {
		cols = append(cols, column{start: f.start, end: f.end, title: f.text})
	}

	// Wrapped header text above the marker line.
	for i := markerIdx - 1; i >= 0 && i >= markerIdx-headerSpan; i-- {
		fields := splitFields(lines[i])
		if len(fields) < 2 || hasDigitField(fields) {
			break
		}
		cols = mergeHeaderFields(cols, fields, true)
	}

	// Wrapped header text and the column numbering row below it.
	firstData := markerIdx + 1
	for i := markerIdx + 1; i < len(lines) && i <= markerIdx+headerSpan+1; i++ {
		fields := splitFields(lines[i])
		if len(fields) == 0 {
			break
		}
		if isNumberingRow(fields) {
			firstData = i + 1
			break
		}
		if hasDigitField(fields) {
			break
		}
		cols = mergeHeaderFields(cols, fields, false)
		firstData = i + 1
	}

	sort.SliceStable(cols, func(i, j int) bool { return cols[i].start < cols[j].start })

	t := &table{columns: cols, name: -1, quantity: -1, manufacturer: -1, firstData: firstData}
	for i, c := range cols {
		compact := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "\u00ad", "").Replace(c.title))
		switch {
		case t.name < 0 && strings.Contains(c.title, headerMarker):
			t.name = i
		case t.quantity < 0 && (strings.Contains(compact, "колич") || strings.Contains(compact, "кол.")):
			t.quantity = i
		case t.manufacturer < 0 && (strings.Contains(c.title, "Завод") || strings.Contains(strings.ToLower(c.title), "изготовитель")):
			t.manufacturer = i
		}
	}
	if t.name < 0 {
		return nil, false
	}
	return t, true
}

// mergeHeaderFields attaches wrapped header fragments to the column they sit under,
// widening it, or opens a new column for text far from every known one.
func mergeHeaderFields(cols []column, fields []field, above bool) []column {
	for _, f := range fields {
		idx, ok := nearestColumn(cols, f, headerJoinDistance)
		if !ok {
			cols = append(cols, column{start: f.start, end: f.end, title: f.text})
			continue
		}
		c := &cols[idx]
		if above {
			c.title = f.text + " " + c.title
		} else {
			c.title = c.title + " " + f.text
		}
		c.start = min(c.start, f.start)
		c.end = max(c.end, f.end)
	}
	return cols
}

func hasDigitField(fields []field) bool {
	for _, f := range fields {
		if hasDigit(f.text) {
			return true
		}
	}
	return false
}

// rawRow is a table row before classification.
type rawRow struct {
	nomenclature []string
	quantity     []string
	manufacturer []string
	// numbered is set when the row began with a position number.
	numbered bool
}

// rows groups the data lines of the table into rows. A line starts a new row when
// it carries text left of the name column (the position number), or a quantity
// the current row cannot take: one that already has a quantity or was not
// numbered. Other lines continue the current row. A blank line closes it.
func (t *table) rows(lines []string) []rawRow {
	var out []rawRow
	current := -1

	for i := t.firstData; i < len(lines); i++ {
		fields := splitFields(lines[i])
		if len(fields) == 0 {
			current = -1
			continue
		}

		cells := make(map[int][]string)
		leading := false
		for _, f := range fields {
			idx, _ := nearestColumn(t.columns, f, 0)
			cells[idx] = append(cells[idx], f.text)
			if idx < t.name {
				leading = true
			}
		}

		startsRow := current < 0 || leading
		if !startsRow && t.quantity >= 0 && len(cells[t.quantity]) > 0 {
			// A vertically centred quantity may sit on a wrapped line of a numbered row.
			prev := out[current]
			startsRow = len(prev.quantity) > 0 || !prev.numbered
		}
		if startsRow {
			out = append(out, rawRow{numbered: leading})
			current = len(out) - 1
		}

		row := &out[current]
		row.nomenclature = append(row.nomenclature, cells[t.name]...)
		if t.quantity >= 0 {
			row.quantity = append(row.quantity, cells[t.quantity]...)
		}
		if t.manufacturer >= 0 {
			row.manufacturer = append(row.manufacturer, cells[t.manufacturer]...)
		}
	}

	return out
}
