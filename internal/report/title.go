// Package report renders a lenovo.Lookup for people: a plain text report
// that gets saved or mailed, and a styled console view.
package report

import (
	"regexp"
	"strings"

	"lenovo-report/internal/scrapers/lenovo"
)

var (
	typeSuffix     = regexp.MustCompile(`(?i)\s*-\s*Type\s+[A-Za-z0-9]{4}\s*$`)
	categorySuffix = regexp.MustCompile(`(?i)\s+(Laptop|Notebook|Desktop|Workstation|Tablet)\s*$`)
)

// ProductTitle turns "ThinkPad T14 Gen 2 Laptop - Type 20W0" into
// "ThinkPad T14 Gen 2".
func ProductTitle(productName string) string {
	name := strings.TrimSpace(productName)
	if name == "" {
		return ""
	}
	name = typeSuffix.ReplaceAllString(name, "")
	name = categorySuffix.ReplaceAllString(name, "")
	return name
}

func DisplayTitle(rec lenovo.Record) string {
	if title := ProductTitle(rec.ProductName); title != "" {
		return title
	}
	if rec.Family != "" {
		return rec.Family
	}
	return rec.Product
}

// SpecOrder is the set of spec categories shown in reports, in display
// order. Other categories are never shown.
var SpecOrder = []string{
	"Processor",
	"Memory",
	"Hard Drive",
	"Wireless Network",
	"Graphics",
	"Monitor",
	"Camera",
	"Ports",
	"Included Warranty",
	"End of Service",
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
