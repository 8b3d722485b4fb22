package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil, nil).Aggregate())

	first := errors.New("first")
	errs.Add(first)
	require.Equal(t, first, errs.Aggregate())

	errs.Add(nil, errors.New("second"))
	err := errs.Aggregate()
	require.EqualError(t, err, "Multiple errors:\nfirst\nsecond")
	require.True(t, errors.Is(err, first))
}
