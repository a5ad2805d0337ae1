package analytics

import (
	"edemy/internal/models"
	"sort"
)

const (
	INSTRUCTOR_ANALYTICS_VERSION = 1

	// RevenueShare is the fraction of each sale paid out to the instructor.
	RevenueShare = 0.7
)

// Uses the instructor's courses to generate their dashboard analytics. Does not need/use any Firebase
// connection.
func GenerateInstructorAnalytics(courses []*models.Course) *models.InstructorAnalytics {
	analytics := &models.InstructorAnalytics{
		Version: INSTRUCTOR_ANALYTICS_VERSION,
	}

	var totalRating float64
	studentsPerCourse := make([]int, 0, len(courses))
	for _, course := range courses {
		if course == nil {
			continue
		}
		analytics.NumCourses++
		analytics.TotalStudents += course.EnrolledStudents
		analytics.TotalReviews += course.ReviewCount
		analytics.TotalRevenue += course.Price * float64(course.EnrolledStudents) * RevenueShare
		totalRating += course.Rating
		studentsPerCourse = append(studentsPerCourse, course.EnrolledStudents)
	}

	// Every course counts equally, whether or not it has been rated yet.
	if analytics.NumCourses > 0 {
		analytics.AverageRating = totalRating / float64(analytics.NumCourses)
	}
	analytics.StudentsPerCourse = CalculatePercentiles(studentsPerCourse)

	return analytics
}

func CalculatePercentiles(data []int) models.Percentiles {
	if len(data) == 0 {
		return models.Percentiles{}
	}

	sorted := append([]int(nil), data...)
	sort.Ints(sorted)

	calculatePercentile := func(percentile float64) float64 {
		rank := percentile / 100 * float64(len(sorted)-1)
		rankInt := int(rank)

		// If the rank is an integer, return the value at that index
		if rank == float64(rankInt) {
			return float64(sorted[rankInt])
		}

		// Otherwise, linearly interpolate
		baseline := sorted[rankInt]
		interpolation := (rank - float64(rankInt)) * float64(sorted[rankInt+1]-sorted[rankInt])

		return float64(baseline) + interpolation
	}

	return models.Percentiles{
		P50: calculatePercentile(50),
		P90: calculatePercentile(90),
		P99: calculatePercentile(99),
	}
}
