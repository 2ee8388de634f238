package vrsconcurrent

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upper(s string) (string, error) {
	return strings.ToUpper(s), nil
}

func makeInputs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item%d", i)
	}
	return out
}

func TestRunPreservesOrderThroughOrderedCollect(t *testing.T) {
	inputs := makeInputs(200)
	results := Run(Feed(inputs), 8, upper)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult[string, string]) error {
		require.NoError(t, r.Err)
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 200)
	for i, seq := range collected {
		assert.Equal(t, i, seq, "result %d out of order", i)
	}
}

func TestRunSingleWorker(t *testing.T) {
	inputs := makeInputs(50)
	results := Run(Feed(inputs), 1, upper)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult[string, string]) error {
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, collected, 50)
}

func TestRunOutputMatchesFunction(t *testing.T) {
	inputs := makeInputs(10)
	results := Run(Feed(inputs), 4, upper)

	err := OrderedCollect(results, func(r WorkResult[string, string]) error {
		assert.Equal(t, strings.ToUpper(r.Input), r.Output)
		return nil
	})
	require.NoError(t, err)
}

func TestRunDefaultsWorkerCountWhenZero(t *testing.T) {
	inputs := makeInputs(5)
	results := Run(Feed(inputs), 0, upper)

	count := 0
	err := OrderedCollect(results, func(r WorkResult[string, string]) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestRunEmptyInput(t *testing.T) {
	results := Run(Feed[string](nil), 4, upper)

	count := 0
	err := OrderedCollect(results, func(r WorkResult[string, string]) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOrderedCollectStopsOnEarlyError(t *testing.T) {
	inputs := makeInputs(100)
	results := Run(Feed(inputs), 4, upper)

	count := 0
	err := OrderedCollect(results, func(r WorkResult[string, string]) error {
		count++
		if count == 5 {
			return fmt.Errorf("stop at 5")
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 5, count)
}

func TestRunPropagatesPerItemErrors(t *testing.T) {
	inputs := []string{"ok", "fail", "ok"}
	results := Run(Feed(inputs), 2, func(s string) (string, error) {
		if s == "fail" {
			return "", fmt.Errorf("cannot process %q", s)
		}
		return s, nil
	})

	var errs int
	err := OrderedCollect(results, func(r WorkResult[string, string]) error {
		if r.Err != nil {
			errs++
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, errs)
}
