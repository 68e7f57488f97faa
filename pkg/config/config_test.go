package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Load("testdata/nrtsta.yml")
	assert.NoError(err)
	assert.Equal("/data/sitelogs", cfg.Sitelogs.Dir)
	assert.Equal("*00???_*.log", cfg.Sitelogs.Pattern)
	assert.Equal("/data/sta/NRT.STA", cfg.Output.Path)
	assert.Equal("1.01", cfg.Output.FormatVersion)
	assert.True(cfg.Output.Compress)
	assert.Equal("OPSLOG", cfg.Output.Remark)
}

func TestLoadDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal("*.log", cfg.Sitelogs.Pattern)
	assert.Equal("1.03", cfg.Output.FormatVersion)
	assert.Equal("SITELOG", cfg.Output.Remark)
	assert.False(cfg.Output.Compress)
}

func TestLoadBadVersion(t *testing.T) {
	_, err := Load("testdata/bad-version.yml")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/nosuchfile.yml")
	assert.Error(t, err)
}

func TestCheckRequiresDir(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.check())

	cfg.Sitelogs.Dir = "/data/sitelogs"
	assert.NoError(t, cfg.check())
}
