package models

// Percentiles is a generic struct for storing percentiles for any distribution of data.
type Percentiles struct {
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
	P99 float64 `json:"p99"`
}

// InstructorAnalytics summarises every course owned by one instructor, as shown on the instructor dashboard.
type InstructorAnalytics struct {
	Version int `json:"version"`

	NumCourses    int     `json:"numCourses"`
	TotalStudents int     `json:"totalStudents"`
	TotalReviews  int     `json:"totalReviews"`
	AverageRating float64 `json:"averageRating"`
	// TotalRevenue is an estimate: price times enrolled students times the instructor's revenue share.
	TotalRevenue float64 `json:"totalRevenue"`

	// StudentsPerCourse is the distribution of enrolled students across the instructor's courses.
	StudentsPerCourse Percentiles `json:"studentsPerCourse"`
}
