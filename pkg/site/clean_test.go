package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TRIMBLE NETR9", "TRIMBLE NETR9"},
		{"  TRIMBLE NETR9  ", "TRIMBLE NETR9"},

		// template hints count as "no value"
		{"(multiple lines)", ""},
		{"(A4)", ""},
		{"(A9)", ""},
		{"(Y or URL)", ""},
		{"", ""},

		// non-ASCII gets folded to its common transliteration
		{"Kötzting", "Koetzting"},
		{"Gräfenberg", "Graefenberg"},
		{"Ondřejov", "Ondejov"},
		{"Weißenburg", "Weissenburg"},
		{"45° 30'", "45 deg 30'"},

		// known broken place names are corrected
		{"ReykjavÃ­k", "Reykjavik"},
		{"HÃ¶fn", "Hoefn"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, cleanValue(tc.in), "cleanValue(%q)", tc.in)
	}
}

func TestParseFloat(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		in   string
		want float64
	}{
		{"8.5", 8.5},
		{"8.5 m", 8.5},
		{"30 m", 30},
		{"0 deg", 0},
		{"2 mm", 2},
		{"60 sec", 60},
		{"1.7 % rel h", 1.7},
		{"-1.2 m", -1.2},
		{"1,5 m", 1.5},
		{"unknown", 0},
		{"", 0},
		{"(hPa)", 0},
	}
	for _, tc := range tests {
		fl, err := parseFloat(tc.in)
		assert.NoError(err, "parseFloat(%q)", tc.in)
		assert.Equal(tc.want, fl, "parseFloat(%q)", tc.in)
	}

	_, err := parseFloat("three")
	assert.Error(err)
}

func TestAddMultipleLine(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("first", addMultipleLine("", "first"))
	assert.Equal("first second", addMultipleLine("first", "second"))
	assert.Equal("first", addMultipleLine("first", ""))
}
