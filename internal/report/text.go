package report

import (
	"fmt"
	"strings"
	"time"

	"lenovo-report/internal/scrapers/lenovo"
)

// DateStamp is the header date, ex. 19-OCT-26.
func DateStamp(now time.Time) string {
	return strings.ToUpper(now.Format("02-Jan-06"))
}

// Text renders the plain text report. It depends only on its arguments, so
// rendering twice with the same clock gives the same bytes.
func Text(lookup lenovo.Lookup, now time.Time) string {
	rec := lookup.Record

	var lines []string
	lines = append(lines, fmt.Sprintf("=== Report: %s - %s - ===", rec.Serial, DateStamp(now)))
	if title := DisplayTitle(rec); title != "" {
		lines = append(lines, title)
	}
	lines = append(lines, fmt.Sprintf("Product Key  : %s", orDash(lookup.ProductKey)))
	lines = append(lines, fmt.Sprintf(
		"MTM / Model  : %s / %s  (Type %s)",
		orDash(rec.Product), orDash(rec.Model), orDash(rec.MachineType),
	))

	lines = append(lines, "", "=== Warranty Info ===")
	for _, field := range warrantyFields(rec) {
		lines = append(lines, fmt.Sprintf("%-16s: %s", field.label, orDash(field.value)))
	}

	lines = append(lines, "", "=== Spec / Build Info ===")
	if lookup.Spec.Len() == 0 {
		lines = append(lines, "(none)")
	}
	for _, category := range SpecOrder {
		value, ok := lookup.Spec.Get(category)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-18s: %s", category, value))
	}

	if lookup.ProductUrl != "" {
		lines = append(lines, "", "URL: "+lookup.ProductUrl)
	}
	return strings.Join(lines, "\n")
}

type warrantyField struct {
	label string
	value string
}

func warrantyFields(rec lenovo.Record) []warrantyField {
	return []warrantyField{
		{"Serial", rec.Serial},
		{"Machine Type", rec.MachineType},
		{"MTM Product", rec.Product},
		{"Model", rec.Model},
		{"Ship-To", rec.ShipToCountry},
		{"Warranty Status", rec.WarrantyStatus},
		{"Plan", rec.PlanName},
		{"Delivery Type", rec.DeliveryType},
		{"Start Date", rec.StartDate},
		{"End Date", rec.EndDate},
	}
}
