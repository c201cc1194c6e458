package spinner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeInternal struct {
	started, stopped int
}

func (f *fakeInternal) Start() { f.started++ }
func (f *fakeInternal) Stop()  { f.stopped++ }

func TestSpinner_StartStop(t *testing.T) {
	fi := &fakeInternal{}
	s := &Spinner{internal: fi}

	s.Start("working")
	require.Equal(t, 1, fi.started)
	require.Equal(t, "working", s.label)

	s.Stop("done")
	require.Equal(t, 1, fi.stopped)
	require.Equal(t, "done", s.label)
}

func TestSpinner_StopWithEmptyLabelKeepsPrevious(t *testing.T) {
	fi := &fakeInternal{}
	s := &Spinner{internal: fi}

	s.Start("working")
	s.Stop("")
	require.Equal(t, "working", s.label)
}
