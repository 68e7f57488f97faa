package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gnsslab/nrtsta/pkg/config"
	"github.com/gnsslab/nrtsta/pkg/site"
)

func testSites() site.Sites {
	s := &site.Site{
		FormInfo: site.FormInformation{DatePrepared: time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)},
		Ident:    site.Identification{Name: "Testville", FourCharacterID: "TEST"},
		Receivers: []*site.Receiver{
			{Type: "TRIMBLE NETR9", SerialNum: "1001",
				DateInstalled: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
		Antennas: []*site.Antenna{
			{Type: "TRM59800.00", SerialNum: "2001", EccUp: 0.1,
				DateInstalled: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	if err := s.ValidateAndClean(); err != nil {
		panic(err)
	}
	return site.Sites{s}
}

func TestWriteOutput(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "TEST.STA")
	err := writeOutput(testSites(), config.OutputConfig{
		Path: path, FormatVersion: "1.03", Remark: "SITELOG",
	})
	assert.NoError(err)

	data, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Contains(string(data), "STATION INFORMATION FILE FOR BERNESE GNSS SOFTWARE 5.2")
	assert.Contains(string(data), "TRIMBLE NETR9")
}

func TestWriteOutputCompressed(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "TEST.STA")
	err := writeOutput(testSites(), config.OutputConfig{
		Path: path, FormatVersion: "1.03", Compress: true, Remark: "SITELOG",
	})
	assert.NoError(err)

	_, err = os.Stat(path + ".gz")
	assert.NoError(err, "compressed file written")
	_, err = os.Stat(path)
	assert.True(os.IsNotExist(err), "uncompressed file removed")
}
