package differ_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/semdiff/semdiff/internal/pkg/differ"
	"github.com/semdiff/semdiff/internal/pkg/differ/mocks"
	"github.com/semdiff/semdiff/internal/pkg/tree"
)

var errComputation = errors.New("computation failed")

type fakeDiff struct{ equal bool }

func (f fakeDiff) Tag() string { return "fake" }
func (f fakeDiff) Equal() bool { return f.equal }

func TestChain_DiffFallsThroughUnsupportedCalculators(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	declines := mocks.NewMockCalculator(ctrl)
	declines.EXPECT().Diff("x", nil, nil).Return(nil, differ.ErrUnsupported)

	accepts := mocks.NewMockCalculator(ctrl)
	accepts.EXPECT().Diff("x", nil, nil).Return(fakeDiff{equal: true}, nil)

	chain := differ.Chain{
		{Name: "declines", Calculator: declines},
		{Name: "accepts", Calculator: accepts},
	}

	var expected, actual tree.Leaf
	tag, d, err := chain.Diff("x", expected, actual)
	require.NoError(t, err)
	require.Equal(t, "accepts", tag)
	require.True(t, d.Equal())
}

func TestChain_DiffReturnsErrNoDifferMatched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	declines := mocks.NewMockCalculator(ctrl)
	declines.EXPECT().Diff("x", nil, nil).Return(nil, differ.ErrUnsupported)

	chain := differ.Chain{{Name: "declines", Calculator: declines}}

	var expected, actual tree.Leaf
	_, _, err := chain.Diff("x", expected, actual)
	require.ErrorIs(t, err, differ.ErrNoDifferMatched)
}

func TestChain_DiffPropagatesComputationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wantErr := errComputation
	failing := mocks.NewMockCalculator(ctrl)
	failing.EXPECT().Diff("x", nil, nil).Return(nil, wantErr)

	chain := differ.Chain{{Name: "failing", Calculator: failing}}

	var expected, actual tree.Leaf
	_, _, err := chain.Diff("x", expected, actual)
	require.ErrorIs(t, err, wantErr)
}
