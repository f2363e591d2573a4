package lenovo

import (
	"net/url"
	"strings"
)

// ProductUrl builds the support page link for the machine, from fullId when
// the API sent one and otherwise from the known hierarchy levels.
func ProductUrl(baseUrl string, rec Record) string {
	idPath := rec.FullId
	if idPath == "" {
		var parts []string
		for _, p := range []string{rec.Group, rec.Series, rec.SubSeries, rec.MachineType, rec.Product, rec.Serial} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		idPath = strings.Join(parts, "/")
	}
	idPath = strings.Trim(idPath, "/")
	if idPath == "" {
		return ""
	}

	segments := strings.Split(strings.ToLower(idPath), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimSuffix(baseUrl, "/") + "/products/" + strings.Join(segments, "/")
}
