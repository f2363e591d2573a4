package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"lenovo-report/internal/scrapers/lenovo"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_\-]+`)

// Filename is <SERIAL>_<machine>-<YYYYMMDD-HHMMSS>.txt, where machine is the
// product title (or MTM product, model, "machine") reduced to [A-Za-z0-9_-].
func Filename(rec lenovo.Record, now time.Time) string {
	serial := strings.ToUpper(rec.Serial)
	if serial == "" {
		serial = "UNKNOWN"
	}

	machine := ProductTitle(rec.ProductName)
	for _, fallback := range []string{rec.Product, rec.Model, "machine"} {
		if machine != "" {
			break
		}
		machine = fallback
	}
	machine = strings.NewReplacer("/", "-", `\`, "-", " ", "_").Replace(strings.TrimSpace(machine))
	machine = unsafeFilenameChars.ReplaceAllString(machine, "")

	return fmt.Sprintf("%s_%s-%s.txt", serial, machine, now.Format("20060102-150405"))
}

// Save writes `text` to Filename(rec, now) under dir, creating dir as needed
// and overwriting an existing file. It returns the written path.
func Save(dir string, text string, rec lenovo.Record, now time.Time) (string, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	path := filepath.Join(dir, Filename(rec, now))
	err = os.WriteFile(path, []byte(text), 0644)
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
