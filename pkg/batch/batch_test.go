package batch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	res, err := Load("testdata", "*.log")
	assert.NoError(err)

	// both ABCD logs collapse into one station, broken.log fails
	if !assert.Len(res.Sites, 1) {
		t.FailNow()
	}
	assert.Len(res.Failed, 1)
	assert.Contains(res.Failed, filepath.Join("testdata", "broken.log"))

	s := res.Sites[0]
	assert.Equal("ABCD", s.StationID())
	assert.Equal("UPDATE", s.FormInfo.ReportType, "newest Date Prepared wins")
	if assert.Len(s.Receivers, 2) {
		assert.Equal("SEPT POLARX5", s.Receivers[1].Type)
	}
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load("testdata/nosuchdir", "*.log")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	assert := assert.New(t)

	s, err := LoadFile("testdata/abcd00swe_20200101.log")
	assert.NoError(err)
	assert.Equal("ABCD", s.StationID())
	assert.Equal("ABCD00SWE", s.Ident.NineCharacterID, "nine character ID derived from filename")
	assert.Equal("ABCD 12345M001", s.StationName())
}

func TestLoadFileInvalid(t *testing.T) {
	_, err := LoadFile("testdata/broken.log")
	assert.Error(t, err, "sitelog without equipment must not validate")
}

func TestDecodeText(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]byte("plain ascii"), decodeText([]byte("plain ascii")))
	assert.Equal([]byte("Kötzting"), decodeText([]byte("Kötzting")), "valid UTF-8 passes through")

	// Latin-1 ö is the single byte 0xf6
	assert.Equal([]byte("Kötzting"), decodeText([]byte{'K', 0xf6, 't', 'z', 't', 'i', 'n', 'g'}))
}

func TestNineCharIDByFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"brux00bel_20200225.log", "BRUX00BEL"},
		{"WTZR00DEU_20200602.log", "WTZR00DEU"},
		{"brux_20200225.log", ""},
		{"x.log", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, nineCharIDByFilename(tc.in), "nineCharIDByFilename(%q)", tc.in)
	}
}
