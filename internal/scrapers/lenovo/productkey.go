package lenovo

import (
	"regexp"
	"strings"

	"lenovo-report/lib/textutil"
)

// brands maps the upper-cased leading sub-series segment to its canonical
// spelling.
var brands = map[string]string{
	"THINKPAD":     "ThinkPad",
	"THINKBOOK":    "ThinkBook",
	"THINKCENTRE":  "ThinkCentre",
	"THINKSTATION": "ThinkStation",
	"THINKVISION":  "ThinkVision",
	"IDEAPAD":      "IdeaPad",
	"IDEACENTRE":   "IdeaCentre",
	"LEGION":       "Legion",
	"YOGA":         "Yoga",
	"LENOVO":       "Lenovo",
	"LOQ":          "LOQ",
}

const amdSuffix = "_AMD"

var (
	subSeriesSeparators = regexp.MustCompile(`[-_/]+`)
	amdMention          = regexp.MustCompile(`(?i)\b(ryzen|amd)\b`)
)

// ProductKey turns a sub-series code like "THINKPAD-T14-GEN2" into
// "ThinkPad_T14_GEN2", adding an "_AMD" suffix when the spec table mentions
// an AMD part. Only the leading segment is checked against the brand table.
// An empty sub-series yields "", one with no usable segment yields just the
// suffix (or "" when there is no AMD mention).
func ProductKey(subSeries string, specHtml string) string {
	if subSeries == "" {
		return ""
	}

	trimmed := strings.Trim(strings.TrimSpace(subSeries), "/")
	var segments []string
	for i, part := range subSeriesSeparators.Split(trimmed, -1) {
		if canonical, ok := brands[strings.ToUpper(part)]; i == 0 && ok {
			segments = append(segments, canonical)
			continue
		}
		if cleaned := textutil.KeepAlnum(part); cleaned != "" {
			segments = append(segments, cleaned)
		}
	}

	key := strings.Join(segments, "_")
	if amdMention.MatchString(specHtml) && !strings.HasSuffix(strings.ToUpper(key), amdSuffix) {
		key += amdSuffix
	}
	return key
}
