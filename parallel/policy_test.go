package parallel_test

import (
	"runtime"
	"testing"

	"github.com/katalvlaran/lvlmoment/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldMultithread(t *testing.T) {
	tests := []struct {
		policy    parallel.Policy
		elements  int
		threshold int
		want      bool
	}{
		{parallel.PolicyNever, 1 << 20, 1, false},
		{parallel.PolicyAlways, 1, 1 << 20, true},
		{parallel.PolicyOptional, 4095, parallel.DefaultThreshold, false},
		{parallel.PolicyOptional, 4096, parallel.DefaultThreshold, true},
		{parallel.PolicyOptional, 0, 0, true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, parallel.ShouldMultithread(tc.policy, tc.elements, tc.threshold),
			"%s elements=%d threshold=%d", tc.policy, tc.elements, tc.threshold)
	}
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []parallel.Policy{parallel.PolicyNever, parallel.PolicyOptional, parallel.PolicyAlways} {
		got, err := parallel.ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := parallel.ParsePolicy(" ALWAYS ")
	require.NoError(t, err)
	assert.Equal(t, parallel.PolicyAlways, got)

	_, err = parallel.ParsePolicy("sometimes")
	assert.ErrorIs(t, err, parallel.ErrUnknownPolicy)

	var p parallel.Policy
	require.NoError(t, p.UnmarshalText([]byte("never")))
	assert.Equal(t, parallel.PolicyNever, p)
	assert.Error(t, p.UnmarshalText([]byte("x")))
	assert.Equal(t, "Policy(9)", parallel.Policy(9).String())
}

func TestWorkerCount(t *testing.T) {
	assert.Equal(t, 1, parallel.WorkerCount(0, 0))
	assert.Equal(t, 1, parallel.WorkerCount(0, 1))
	assert.Equal(t, min(runtime.NumCPU(), 2), parallel.WorkerCount(2, 1000))
	assert.Equal(t, min(runtime.NumCPU(), 1000), parallel.WorkerCount(0, 1000))
	assert.LessOrEqual(t, parallel.WorkerCount(64, 3), 3)
}
