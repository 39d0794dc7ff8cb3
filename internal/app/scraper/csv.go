package scraper

import (
	"encoding/csv"
	"fmt"
	"io"

	"fastsearch/internal/app/model"
)

// readTable reads a CSV with a header row and returns records keyed by
// column name.
func readTable(r io.Reader, required []string) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("csv is missing column %q", name)
		}
	}

	var records []map[string]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		record := make(map[string]string, len(columns))
		for name, i := range columns {
			if i < len(row) {
				record[name] = row[i]
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// LoadLessons reads the lesson seed table linking videos to course
// lessons and forum threads.
func LoadLessons(r io.Reader) ([]model.Lesson, error) {
	records, err := readTable(r, []string{"video_id", "course_id", "name"})
	if err != nil {
		return nil, err
	}

	lessons := make([]model.Lesson, 0, len(records))
	for _, record := range records {
		lessons = append(lessons, model.Lesson{
			VideoID:   record["video_id"],
			CourseID:  record["course_id"],
			Name:      record["name"],
			LessonURL: record["lesson_url"],
			ForumURL:  record["forum_url"],
		})
	}
	return lessons, nil
}

// LoadCourses reads the course seed table.
func LoadCourses(r io.Reader) ([]model.Course, error) {
	records, err := readTable(r, []string{"course_id", "name"})
	if err != nil {
		return nil, err
	}

	courses := make([]model.Course, 0, len(records))
	for _, record := range records {
		courses = append(courses, model.Course{
			CourseID:  record["course_id"],
			Name:      record["name"],
			CourseURL: record["course_url"],
		})
	}
	return courses, nil
}
