package scrape

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"fastsearch/internal/app/model"
	"fastsearch/internal/app/scraper"
	"fastsearch/internal/config"
)

var coursesPath string
var outputPath string

func init() {
	Cmd.Flags().StringVarP(&coursesPath, "courses", "c", "", "courses csv to scrape lessons for")
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "lessons csv to write")

	Cmd.MarkFlagRequired("courses")
	Cmd.MarkFlagRequired("output")
}

// Cmd represents the scrape command
var Cmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape course pages into a lessons table",
	Long: `Scrape course pages into a lessons table.

Fetches each course page listed in the courses csv, extracts its
lesson links and writes the combined lessons csv used during indexing.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(); err != nil {
			log.Fatal(err)
		}
	},
}

func run() error {
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	coursesFile, err := os.Open(coursesPath)
	if err != nil {
		return err
	}
	defer coursesFile.Close()

	courses, err := scraper.LoadCourses(coursesFile)
	if err != nil {
		return err
	}

	client := scraper.NewClient(0)
	ctx := context.Background()

	var lessons []model.Lesson
	for _, course := range courses {
		scraped, err := client.ScrapeLessons(ctx, course)
		if err != nil {
			return fmt.Errorf("scraping %s failed: %w", course.CourseID, err)
		}
		lessons = append(lessons, scraped...)
	}
	// course pages can list the same video twice (e.g. a recap link)
	lessons = lo.UniqBy(lessons, func(lesson model.Lesson) string { return lesson.VideoID })

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write([]string{"video_id", "course_id", "name", "lesson_url", "forum_url"}); err != nil {
		return err
	}
	for _, lesson := range lessons {
		record := []string{lesson.VideoID, lesson.CourseID, lesson.Name, lesson.LessonURL, lesson.ForumURL}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("scraped %d lessons from %d courses into %s\n", len(lessons), len(courses), outputPath)
	return nil
}
