package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildVersionCmd_PrintsVersion(t *testing.T) {
	cmd := BuildVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "semdiff version:")
}
