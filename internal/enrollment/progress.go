package enrollment

import (
	"math"

	"edemy/internal/qerrors"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Partition splits candidate course IDs into those the student already owns and those to enroll in.
// Empty and duplicate IDs are dropped; the first occurrence keeps its position.
func Partition(candidates []string, enrolled map[string]bool) (alreadyEnrolled []string, toEnroll []string) {
	alreadyEnrolled = make([]string, 0)
	toEnroll = make([]string, 0)

	seen := make(map[string]bool)
	for _, id := range candidates {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		if enrolled[id] {
			alreadyEnrolled = append(alreadyEnrolled, id)
		} else {
			toEnroll = append(toEnroll, id)
		}
	}
	return
}

// ComputeProgress returns the rounded percentage of lessons watched. A course without lessons counts as
// having one. The result is 100 only when every lesson has been watched.
func ComputeProgress(watched int, total int) int {
	if total <= 0 {
		total = 1
	}
	if watched <= 0 {
		return 0
	}
	if watched >= total {
		return 100
	}

	progress := int(math.Round(100 * float64(watched) / float64(total)))
	if progress >= 100 {
		// e.g. 199 of 200 lessons rounds up.
		return 99
	}
	return progress
}

// RunningMean folds one more rating into a mean of count ratings. The result is clamped to [0, 5].
func RunningMean(rating float64, count int, value int) (float64, int) {
	if count < 0 {
		count = 0
	}
	newCount := count + 1
	newRating := (rating*float64(count) + float64(value)) / float64(newCount)
	return math.Max(0, math.Min(MaxRating, newRating)), newCount
}

// ValidateRating checks that a rating is a whole number of stars between 1 and 5.
func ValidateRating(value int) error {
	if value < MinRating || value > MaxRating {
		return qerrors.InvalidRatingError
	}
	return nil
}
