package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"lenovo-report/internal/scrapers/lenovo"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const ruleWidth = 72

// Console renders the styled terminal view of a lookup.
type Console struct {
	Out io.Writer
	// Color enables ANSI styling, turn it off for logs and pipes.
	Color bool
}

func (c Console) style(s string, colors ...text.Color) string {
	if !c.Color || len(colors) == 0 {
		return s
	}
	return text.Colors(colors).Sprint(s)
}

// Rule prints a horizontal line with `title` centered on it.
func (c Console) Rule(title string) {
	line := strings.Repeat("─", ruleWidth)
	if title != "" {
		title = " " + title + " "
		pad := ruleWidth - text.RuneWidthWithoutEscSequences(title)
		if pad < 2 {
			pad = 2
		}
		left := pad / 2
		line = strings.Repeat("─", left) + title + strings.Repeat("─", pad-left)
	}
	fmt.Fprintln(c.Out, c.style(line, text.FgCyan))
}

// Println writes a line of plain text, styled when color is enabled.
func (c Console) Println(s string, colors ...text.Color) {
	fmt.Fprintln(c.Out, c.style(s, colors...))
}

func (c Console) newTable(title string) table.Writer {
	t := table.NewWriter()
	style := table.StyleRounded
	if c.Color {
		style.Color.Border = text.Colors{text.FgGreen}
		style.Color.Separator = text.Colors{text.FgGreen}
		style.Title.Colors = text.Colors{text.Bold}
	}
	t.SetStyle(style)
	t.SetTitle(title)
	return t
}

func (c Console) label(s string) string {
	return c.style(s, text.Bold)
}

func (c Console) printTable(t table.Writer) {
	fmt.Fprintln(c.Out, t.Render())
}

// Render prints the whole console view. `now` stamps the header and decides
// whether the warranty is active.
func (c Console) Render(lookup lenovo.Lookup, now time.Time) {
	rec := lookup.Record
	serial := rec.Serial
	if serial == "" {
		serial = lookup.QueriedSerial
	}

	fmt.Fprintln(c.Out)
	c.Rule(fmt.Sprintf("Report: %s [%s]", serial, DateStamp(now)))
	fmt.Fprintln(c.Out)

	fmt.Fprintf(c.Out, "%s  : %s\n", c.label("Product Slug"), c.style(DisplayTitle(rec), text.Bold, text.FgCyan))
	fmt.Fprintf(c.Out, "%s   : %s\n", c.label("Product Key"), orDash(lookup.ProductKey))
	fmt.Fprintf(
		c.Out, "%s   : %s / %s  (Type %s)\n",
		c.label("MTM / Model"),
		orDash(rec.Product), orDash(rec.Model), orDash(rec.MachineType),
	)
	fmt.Fprintln(c.Out)

	c.printTable(c.warrantyTable(rec, now))
	c.printTable(c.buildTable(lookup.Spec))

	if lookup.ProductUrl != "" {
		pages := c.newTable("Product Pages")
		pages.AppendRow(table.Row{c.label("Product Home:"), lookup.ProductUrl})
		c.printTable(pages)
		fmt.Fprintln(c.Out)
		c.Rule(c.style("End Of Report", text.Bold, text.FgWhite))
	}
}

func (c Console) warrantyTable(rec lenovo.Record, now time.Time) table.Writer {
	status := orDash(rec.WarrantyStatus)
	end := orDash(rec.EndDate)
	switch State(rec.StartDate, rec.EndDate, now) {
	case WarrantyActive:
		if rec.WarrantyStatus == "" {
			status = "In warranty"
		}
		status = c.style(status, text.FgGreen)
		end = c.style(end, text.FgGreen)
	case WarrantyInactive:
		if rec.WarrantyStatus == "" {
			status = "Out of warranty"
		}
		status = c.style(status, text.FgRed)
		end = c.style(end, text.FgRed)
	}

	t := c.newTable("Warranty Info")
	for _, field := range warrantyFields(rec) {
		value := orDash(field.value)
		switch field.label {
		case "Warranty Status":
			value = status
		case "End Date":
			value = end
		}
		t.AppendRow(table.Row{c.label(field.label), value})
	}
	return t
}

func (c Console) buildTable(spec lenovo.SpecMap) table.Writer {
	t := c.newTable("Build Info")
	if spec.Len() == 0 {
		t.AppendRow(table.Row{"(none)", ""})
		return t
	}
	for _, category := range SpecOrder {
		value, ok := spec.Get(category)
		if !ok {
			continue
		}
		t.AppendRow(table.Row{c.label(category), value})
	}
	return t
}
