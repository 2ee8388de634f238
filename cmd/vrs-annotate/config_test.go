package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestRunConfigSetAndGetRoundTrip(t *testing.T) {
	resetViper(t)
	viper.SetConfigFile(filepath.Join(t.TempDir(), ".vrs-annotate.yaml"))

	require.NoError(t, runConfigSet("assembly", "GRCh37"))
	assert.Equal(t, "GRCh37", viper.GetString("assembly"))
}

func TestRunConfigSetParsesBooleanShorthand(t *testing.T) {
	resetViper(t)
	viper.SetConfigFile(filepath.Join(t.TempDir(), ".vrs-annotate.yaml"))

	require.NoError(t, runConfigSet("vrs_attributes", "true"))
	assert.Equal(t, true, viper.Get("vrs_attributes"))

	require.NoError(t, runConfigSet("skip_ref", "off"))
	assert.Equal(t, false, viper.Get("skip_ref"))
}

func TestRunConfigGetRejectsUnsetKey(t *testing.T) {
	resetViper(t)
	err := runConfigGet("never_set_key")
	assert.Error(t, err)
}
