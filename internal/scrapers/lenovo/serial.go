package lenovo

import (
	"strings"

	"lenovo-report/lib/textutil"
)

// NormSerial strips everything but ASCII letters and digits and upper-cases
// the rest, "pf-2v08ga " becomes "PF2V08GA".
func NormSerial(serial string) string {
	return strings.ToUpper(textutil.KeepAlnum(serial))
}
