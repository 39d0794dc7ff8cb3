package pipeline

import "fastsearch/internal/app/model"

// Catalog indexes the lesson and course seed tables for payload
// denormalization. Videos outside the catalog index fine, their
// payloads just carry no lesson fields.
type Catalog struct {
	lessons map[string]model.Lesson
	courses map[string]model.Course
}

func NewCatalog(lessons []model.Lesson, courses []model.Course) *Catalog {
	c := &Catalog{
		lessons: make(map[string]model.Lesson, len(lessons)),
		courses: make(map[string]model.Course, len(courses)),
	}
	for _, lesson := range lessons {
		c.lessons[lesson.VideoID] = lesson
	}
	for _, course := range courses {
		c.courses[course.CourseID] = course
	}
	return c
}

func (c *Catalog) Lesson(videoID string) (model.Lesson, bool) {
	lesson, ok := c.lessons[videoID]
	return lesson, ok
}

func (c *Catalog) Course(courseID string) (model.Course, bool) {
	course, ok := c.courses[courseID]
	return course, ok
}
