package app

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("lakes", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)

	require.NoError(t, fs.Parse([]string{"-scale", "2", "-set", "ice_rate=750", "-set", "mean_temp=-10"}))
	assert.Equal(t, 2, cfg.Scale)
	assert.Equal(t, "lakes", cfg.Sim)
	assert.Equal(t, Params{"ice_rate": "750", "mean_temp": "-10"}, cfg.Params)

	assert.Error(t, fs.Parse([]string{"-set", "nonsense"}))
}
