package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"fastsearch/internal/app/model"
)

// Client fetches caption tracks and course pages over HTTP.
type Client struct {
	http *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// FetchCaptions downloads the raw subtitle document for a track.
func (c *Client) FetchCaptions(ctx context.Context, track model.Subtitle) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build caption request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("caption download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption download for %s returned %d", track.VideoID, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read caption body: %w", err)
	}
	return string(data), nil
}

// ScrapeLessons extracts the lesson list from a course page. Each
// anchor inside the lesson listing becomes one lesson; a forum link in
// the same list item is attached when present.
func (c *Client) ScrapeLessons(ctx context.Context, course model.Course) ([]model.Lesson, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, course.CourseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build course page request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("course page fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("course page %s returned %d", course.CourseURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse course page: %w", err)
	}

	base, err := url.Parse(course.CourseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid course url: %w", err)
	}

	var lessons []model.Lesson
	doc.Find(".lesson-list li, ul.lessons li").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a.lesson, a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}

		lesson := model.Lesson{
			CourseID:  course.CourseID,
			Name:      strings.TrimSpace(link.Text()),
			LessonURL: resolveURL(base, href),
		}
		if id, ok := item.Attr("data-video-id"); ok {
			lesson.VideoID = id
		}
		if forum, ok := item.Find("a.forum").First().Attr("href"); ok {
			lesson.ForumURL = resolveURL(base, forum)
		}
		lessons = append(lessons, lesson)
	})

	return lessons, nil
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
