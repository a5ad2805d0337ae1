package enrollment

import (
	"testing"

	"edemy/internal/qerrors"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	enrolled := map[string]bool{"A": true, "C": true}

	already, toEnroll := Partition([]string{"A", "B", "C", "B", "", "D"}, enrolled)

	assert.Equal(t, []string{"A", "C"}, already)
	assert.Equal(t, []string{"B", "D"}, toEnroll)
}

func TestPartitionEmpty(t *testing.T) {
	already, toEnroll := Partition(nil, nil)
	assert.Empty(t, already)
	assert.Empty(t, toEnroll)
	assert.NotNil(t, toEnroll)
}

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		watched, total, want int
	}{
		{0, 4, 0},
		{1, 4, 25},
		{2, 4, 50},
		{3, 4, 75},
		{4, 4, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 0, 100},
		{0, 0, 0},
		{199, 200, 99},
		{5, 4, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ComputeProgress(tt.watched, tt.total), "%d of %d", tt.watched, tt.total)
	}
}

func TestComputeProgressMonotonic(t *testing.T) {
	for total := 1; total <= 250; total++ {
		last := 0
		for watched := 0; watched <= total; watched++ {
			p := ComputeProgress(watched, total)
			assert.GreaterOrEqual(t, p, last)
			assert.Equal(t, watched == total, p == 100, "%d of %d", watched, total)
			last = p
		}
	}
}

func TestRunningMean(t *testing.T) {
	rating, count := RunningMean(4.0, 10, 5)
	assert.Equal(t, 11, count)
	assert.InDelta(t, 4.0909, rating, 0.0001)

	rating, count = RunningMean(0, 0, 3)
	assert.Equal(t, 1, count)
	assert.Equal(t, 3.0, rating)

	// Out-of-range stored values are pulled back into [0, 5].
	rating, _ = RunningMean(9, 1, 5)
	assert.Equal(t, 5.0, rating)
	rating, _ = RunningMean(-20, 1, 1)
	assert.Equal(t, 0.0, rating)

	rating, count = RunningMean(4.5, -2, 4)
	assert.Equal(t, 1, count)
	assert.Equal(t, 4.0, rating)
}

func TestValidateRating(t *testing.T) {
	for v := 1; v <= 5; v++ {
		assert.NoError(t, ValidateRating(v))
	}
	for _, v := range []int{-1, 0, 6, 10} {
		assert.ErrorIs(t, ValidateRating(v), qerrors.InvalidRatingError)
	}
}
