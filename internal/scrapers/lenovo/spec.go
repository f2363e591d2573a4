package lenovo

import (
	"regexp"
	"strings"

	"lenovo-report/lib/htmlutil"
	"lenovo-report/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// the spec table is sent as latin-1 decoded utf-8, so every non-breaking
// space arrives prefixed by a stray "Â".
const misencodedNbspPrefix = "Â"

// ParseSpecTable reads the two column key/value table embedded in
// machineInfo.specification. Rows need at least two cells and a non-empty
// first cell, extra cells are joined into the value. When a category repeats
// the first row wins.
func ParseSpecTable(fragment string) (SpecMap, error) {
	var out SpecMap
	if fragment == "" {
		return out, nil
	}

	// the vendor sometimes entity-escapes the whole table, markup included
	decoded := html.UnescapeString(fragment)
	decoded = strings.ReplaceAll(decoded, misencodedNbspPrefix, " ")
	decoded = textutil.CollapseWhitespace(decoded)

	doc, err := htmlutil.ParseTableFragment(decoded)
	if err != nil {
		return out, err
	}

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		for _, td := range row.ChildrenFiltered("td").Nodes {
			cells = append(cells, strings.TrimSpace(htmlutil.GetText(td)))
		}
		if len(cells) < 2 || cells[0] == "" {
			return
		}

		value := strings.TrimSpace(strings.Join(cells[1:], " "))
		value = strings.ReplaceAll(value, "DRR4", "DDR4")
		out.SetIfAbsent(cells[0], value)
	})

	return out, nil
}

const memoryCategory = "Memory"

var memorySeparators = regexp.MustCompile(`[;|]`)

// Canonicalize collapses whitespace in every value and drops repeated
// memory modules, which the API tends to list once per configuration
// variant. Order is preserved and the input is left untouched.
func Canonicalize(spec SpecMap) SpecMap {
	var out SpecMap
	for _, entry := range spec.Entries() {
		value := textutil.CollapseWhitespace(entry.Value)
		if entry.Key == memoryCategory && value != "" {
			value = dedupeSegments(value)
		}
		out.SetIfAbsent(entry.Key, value)
	}
	return out
}

// dedupeSegments keeps the first spelling of every segment, comparing
// segments case and whitespace insensitively.
func dedupeSegments(value string) string {
	var unique []string
	seen := map[string]bool{}
	for _, part := range memorySeparators.Split(value, -1) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		part = strings.Trim(part, " ;")
		key := textutil.NormalizeName(part)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, part)
	}
	return strings.Join(unique, "; ")
}
