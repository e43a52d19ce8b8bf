package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettleAll_AllBranchesSettle(t *testing.T) {
	branches := []branch{
		{Name: "a", Run: func(context.Context) (string, error) { return "ok-a", nil }},
		{Name: "b", Run: func(context.Context) (string, error) { return "", errors.New("b failed") }},
		{Name: "c", Run: func(context.Context) (string, error) { return "ok-c", nil }},
	}

	out := settleAll(context.Background(), branches)

	require.Len(t, out, 3)
	assert.Equal(t, "ok-a", out["a"].Value)
	assert.NoError(t, out["a"].Err)
	assert.Error(t, out["b"].Err)
	assert.Equal(t, "ok-c", out["c"].Value)
}

func TestSettleAll_FailureDoesNotCancelSiblings(t *testing.T) {
	slowDone := false
	branches := []branch{
		{Name: "fast-fail", Run: func(context.Context) (string, error) {
			return "", errors.New("immediate failure")
		}},
		{Name: "slow", Run: func(ctx context.Context) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(50 * time.Millisecond):
				slowDone = true
				return "slow-ok", nil
			}
		}},
	}

	out := settleAll(context.Background(), branches)

	assert.Error(t, out["fast-fail"].Err)
	assert.Equal(t, "slow-ok", out["slow"].Value)
	assert.True(t, slowDone)
}

func TestSettleAll_PanicBecomesError(t *testing.T) {
	branches := []branch{
		{Name: "panics", Run: func(context.Context) (string, error) { panic("boom") }},
		{Name: "fine", Run: func(context.Context) (string, error) { return "ok", nil }},
	}

	out := settleAll(context.Background(), branches)

	require.Error(t, out["panics"].Err)
	assert.Contains(t, out["panics"].Err.Error(), "panicked")
	assert.Equal(t, "ok", out["fine"].Value)
}

func TestSettleAll_Empty(t *testing.T) {
	assert.Empty(t, settleAll(context.Background(), nil))
}
