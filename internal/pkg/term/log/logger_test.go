package log

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelsWriteToInjectedWriter(t *testing.T) {
	color.NoColor = true
	var b strings.Builder
	l := New(&b)

	l.Successln("built")
	l.Errorln("broke")
	l.Warningln("careful")
	l.Infoln("plain")
	l.Debugln("verbose")

	out := b.String()
	require.Contains(t, out, "built")
	require.Contains(t, out, "broke")
	require.Contains(t, out, "careful")
	require.Contains(t, out, "plain")
	require.Contains(t, out, "verbose")
}

func TestLogger_FormattedVariants(t *testing.T) {
	color.NoColor = true
	var b strings.Builder
	l := New(&b)

	l.Infof("%d items", 3)
	require.Contains(t, b.String(), "3 items")
}
