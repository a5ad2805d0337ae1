package seed

import (
	"fmt"

	"edemy/internal/models"
)

type instructor struct {
	id     string
	name   string
	avatar string
}

var (
	johnDoe     = instructor{"inst-1", "John Doe", "https://images.unsplash.com/photo-1560250097-0b93528c311a?w=100&q=80"}
	janeSmith   = instructor{"inst-2", "Jane Smith", "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=100&q=80"}
	alexJohnson = instructor{"inst-3", "Alex Johnson", "https://images.unsplash.com/photo-1539571696357-5a69c17a67c6?w=100&q=80"}
)

const sampleVideoURL = "https://www.youtube.com/watch?v=pQN-pnXPaVg"

// SampleCurriculum returns the two-section, five-lesson curriculum shared by every placeholder course.
func SampleCurriculum() []models.Section {
	return []models.Section{
		{
			Title: "Section 1: Introduction",
			Lessons: []models.Lesson{
				{Title: "Welcome to the Course", VideoURL: sampleVideoURL},
				{Title: "Course Outline and Objectives", VideoURL: sampleVideoURL},
			},
		},
		{
			Title: "Section 2: Core Concepts",
			Lessons: []models.Lesson{
				{Title: "Understanding the Basics", VideoURL: sampleVideoURL},
				{Title: "Advanced Topic 1", VideoURL: sampleVideoURL},
				{Title: "Advanced Topic 2", VideoURL: sampleVideoURL},
			},
		},
	}
}

type placeholder struct {
	title, description, summary string
	inst                        instructor
	category                    string
	level                       models.Level
	price, rating               float64
	reviewCount                 int
	duration                    string
	enrolledStudents            int
}

var placeholders = []placeholder{
	{"The Complete 2024 Web Development Bootcamp", "Become a full-stack web developer with just one course. HTML, CSS, Javascript, Node, React, MongoDB and more!", "A comprehensive guide to modern web development.", johnDoe, "Programming", models.LevelAllLevels, 84.99, 4.5, 1258, "62 hours", 2500},
	{"UI/UX Design Essentials: From Wireframe to Prototype", "Learn to design beautiful and user-friendly interfaces. Master Figma and Adobe XD. No prior experience required.", "Master UI/UX design principles and tools.", janeSmith, "Design", models.LevelBeginner, 49.99, 4.4, 3201, "35.5 hours", 4800},
	{"Digital Marketing Masterclass - 23 Courses in 1", "Grow your business with our masterclass on digital marketing. Covers SEO, social media marketing, email marketing, and more.", "An all-in-one guide to digital marketing.", johnDoe, "Business", models.LevelIntermediate, 129.99, 4.3, 890, "40.5 hours", 1200},
	{"Mindfulness and Meditation for a Stress-Free Life", "Learn techniques to reduce stress, improve focus, and find inner peace through guided meditations and mindfulness exercises.", "Reduce stress with mindfulness techniques.", janeSmith, "Personal Development", models.LevelBeginner, 29.99, 4.5, 1543, "10 hours", 3100},
	{"Photography Masterclass: A Complete Guide to Photography", "Learn how to take stunning photos with any camera. Understand composition, lighting, and editing.", "Become a master photographer.", johnDoe, "Photography", models.LevelAllLevels, 99.99, 4.2, 2200, "22 hours", 5500},
	{"The Ultimate Guide to Playing Guitar", "Learn guitar from scratch. Covers chords, scales, and your favorite songs.", "Learn to play the guitar like a pro.", janeSmith, "Music", models.LevelBeginner, 79.99, 4.1, 1800, "30 hours", 4200},
	{"Artificial Intelligence: Reinforcement Learning in Python", "Dive deep into the world of AI and learn how to build agents that learn from experience with this hands-on course in Reinforcement Learning.", "Master AI with Python and Reinforcement Learning.", alexJohnson, "Programming", models.LevelAdvanced, 149.99, 4.4, 950, "50 hours", 1500},
	{"The Complete Guide to Gourmet Cooking", "Learn the techniques of world-class chefs. From basic knife skills to advanced plating, this course has it all.", "Become a gourmet chef in your own kitchen.", johnDoe, "Lifestyle", models.LevelAllLevels, 69.99, 4.3, 1100, "15 hours", 2800},
	{"Acrylic Painting for Beginners", "Unleash your inner artist. This course will guide you through the basics of acrylic painting, from color theory to your first masterpiece.", "Learn to paint with acrylics.", janeSmith, "Art", models.LevelBeginner, 39.99, 4.2, 780, "12 hours", 1900},
	{"Creative Writing: Crafting Compelling Stories", "Learn the art of storytelling. This course covers plot development, character creation, and the secrets to writing a page-turner.", "Write stories that captivate your readers.", alexJohnson, "Writing", models.LevelIntermediate, 59.99, 4.5, 1300, "25 hours", 2200},
	{"Yoga for Flexibility and Strength", "Improve your physical and mental well-being with this comprehensive yoga course. Suitable for all fitness levels.", "Increase flexibility and strength with yoga.", janeSmith, "Health", models.LevelAllLevels, 49.99, 4.4, 2100, "20 hours", 6000},
	{"Investing for Beginners: The Stock Market", "Learn the fundamentals of investing in the stock market. Understand stocks, bonds, and ETFs to build your own portfolio.", "Start your investing journey today.", johnDoe, "Finance", models.LevelBeginner, 89.99, 4.3, 1600, "18 hours", 3500},
}

// Courses returns the placeholder catalog with IDs "1" through "12". Every call returns fresh copies.
func Courses() []*models.Course {
	courses := make([]*models.Course, 0, len(placeholders))
	for i, p := range placeholders {
		id := fmt.Sprintf("%d", i+1)
		courses = append(courses, &models.Course{
			ID:               id,
			Title:            p.title,
			Description:      p.description,
			Summary:          p.summary,
			Category:         p.category,
			Level:            p.level,
			Price:            p.price,
			Rating:           p.rating,
			ReviewCount:      p.reviewCount,
			ImageURL:         fmt.Sprintf("https://picsum.photos/seed/course-%s/600/400", id),
			ImageHint:        "course image",
			Language:         "English",
			Duration:         p.duration,
			Curriculum:       SampleCurriculum(),
			EnrolledStudents: p.enrolledStudents,
			InstructorID:     p.inst.id,
			InstructorName:   p.inst.name,
			InstructorAvatar: p.inst.avatar,
		})
	}
	return courses
}
