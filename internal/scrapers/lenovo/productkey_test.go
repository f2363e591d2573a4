package lenovo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductKey(t *testing.T) {
	testCases := []struct {
		name      string
		subSeries string
		specHtml  string
		expected  string
	}{
		{name: "brand", subSeries: "ThinkPad-T14-Gen2", expected: "ThinkPad_T14_Gen2"},
		{name: "amd", subSeries: "ThinkPad-T14-Gen2", specHtml: "<td>AMD Ryzen 5 PRO 5650U</td>", expected: "ThinkPad_T14_Gen2_AMD"},
		{name: "ryzen only", subSeries: "ThinkPad-T14-Gen2", specHtml: "ryzen 7", expected: "ThinkPad_T14_Gen2_AMD"},
		{name: "intel and amd", subSeries: "IdeaPad-5", specHtml: "Intel Wi-Fi, AMD Radeon", expected: "IdeaPad_5_AMD"},
		{name: "no double suffix", subSeries: "THINKPAD-T14-GEN-2-AMD", specHtml: "AMD", expected: "ThinkPad_T14_GEN_2_AMD"},
		{name: "amd must be a word", subSeries: "Legion-5", specHtml: "CAMDEN RADEONAMD", expected: "Legion_5"},
		{name: "upper-case brand", subSeries: "THINKBOOK_14_G4", expected: "ThinkBook_14_G4"},
		{name: "loq", subSeries: "loq-15irh8", expected: "LOQ_15irh8"},
		{name: "unknown brand is stripped", subSeries: "Think Pad!-X1", expected: "ThinkPad_X1"},
		{name: "brand only on first segment", subSeries: "T14-thinkpad", expected: "T14_thinkpad"},
		{name: "separator runs and slashes", subSeries: " /yoga--slim_/7/ ", expected: "Yoga_slim_7"},
		{name: "empty", subSeries: "", specHtml: "AMD", expected: ""},
		{name: "nothing left with amd", subSeries: "--/--", specHtml: "AMD", expected: "_AMD"},
		{name: "nothing left ryzen", subSeries: "---", specHtml: "AMD Ryzen 5", expected: "_AMD"},
		{name: "nothing left", subSeries: "--/--", specHtml: "Intel Core i5", expected: ""},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, ProductKey(test.subSeries, test.specHtml))
		})
	}
}

func TestProductKeyRederive(t *testing.T) {
	key := ProductKey("ThinkPad-T14-Gen2", "AMD Ryzen 5")
	require.Equal(t, "ThinkPad_T14_Gen2_AMD", key)
	require.Equal(t, key, ProductKey(key, "AMD Ryzen 5"))
}

func TestProductUrl(t *testing.T) {
	const base = "https://pcsupport.lenovo.com/us/en/"

	testCases := []struct {
		name     string
		record   Record
		expected string
	}{
		{
			name:     "full id",
			record:   Record{FullId: "LAPTOPS-AND-NETBOOKS/THINKPAD-T-SERIES/20W0/PF2V08GA", Group: "ignored"},
			expected: "https://pcsupport.lenovo.com/us/en/products/laptops-and-netbooks/thinkpad-t-series/20w0/pf2v08ga",
		},
		{
			name:     "hierarchy",
			record:   Record{Group: "Laptops", SubSeries: "ThinkPad T14", MachineType: "20W0", Serial: "PF2V08GA"},
			expected: "https://pcsupport.lenovo.com/us/en/products/laptops/thinkpad%20t14/20w0/pf2v08ga",
		},
		{
			name:     "nothing known",
			record:   Record{},
			expected: "",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, ProductUrl(base, test.record))
		})
	}
}
