package cli

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestCompareOpts_ValidateRequiresBothPaths(t *testing.T) {
	o := &compareOpts{}
	require.ErrorIs(t, o.Validate(), errMissingPaths)

	o.expectedPath = "expected"
	require.ErrorIs(t, o.Validate(), errMissingPaths)

	o.actualPath = "actual"
	require.NoError(t, o.Validate())
}

func TestCompareOpts_BuildSinkRequiresAtLeastOneOutput(t *testing.T) {
	o := &compareOpts{fs: afero.NewMemMapFs(), w: &strings.Builder{}, noSummary: true}
	_, _, err := o.buildSink()
	require.Error(t, err)
}

func TestCompareOpts_BuildSinkDefaultsToSummary(t *testing.T) {
	var w strings.Builder
	o := &compareOpts{fs: afero.NewMemMapFs(), w: &w}
	sink, counters, err := o.buildSink()
	require.NoError(t, err)
	require.NotNil(t, sink)
	require.NotNil(t, counters)
}

func TestCompareOpts_ExecuteNoDifferences(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "expected/a.txt", []byte("same"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "actual/a.txt", []byte("same"), 0o644))

	var w strings.Builder
	o := &compareOpts{
		fs:           fs,
		w:            &w,
		expectedPath: "expected",
		actualPath:   "actual",
		noSpinner:    true,
	}
	require.NoError(t, o.Execute())
}

func TestCompareOpts_ExecuteReportsDifferencesFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "expected/a.txt", []byte("one"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "actual/a.txt", []byte("two"), 0o644))

	var w strings.Builder
	o := &compareOpts{
		fs:           fs,
		w:            &w,
		expectedPath: "expected",
		actualPath:   "actual",
		noSpinner:    true,
	}
	err := o.Execute()
	require.Error(t, err)
	require.Equal(t, "differences found", err.Error())

	type exitCoder interface{ ExitCode() int }
	ec, ok := err.(exitCoder)
	require.True(t, ok)
	require.Equal(t, 1, ec.ExitCode())
}

func TestCompareOpts_LoadConfigFromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "cfg.yaml", []byte("json:\n  json_ignore_object_key_order: true\n"), 0o644))

	o := &compareOpts{fs: fs, configPath: "cfg.yaml"}
	cfg, err := o.loadConfig()
	require.NoError(t, err)
	require.True(t, cfg.JSON.IgnoreObjectKeyOrder)
}
