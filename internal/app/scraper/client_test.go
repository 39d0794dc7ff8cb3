package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastsearch/internal/app/model"
)

func TestFetchCaptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("WEBVTT\n\n00:00:00.000 --> 00:00:02.000\nhello\n"))
	}))
	defer server.Close()

	client := NewClient(0)
	content, err := client.FetchCaptions(context.Background(), model.Subtitle{
		VideoID: "abc123",
		URL:     server.URL + "/en.vtt",
	})
	require.NoError(t, err)
	assert.Contains(t, content, "WEBVTT")
}

func TestFetchCaptionsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(0)
	_, err := client.FetchCaptions(context.Background(), model.Subtitle{VideoID: "abc123", URL: server.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestScrapeLessons(t *testing.T) {
	page := `<html><body>
	<ul class="lesson-list">
		<li data-video-id="abc123">
			<a class="lesson" href="/lessons/1">Lesson 1: Getting started</a>
			<a class="forum" href="https://forum.example.com/t/lesson-1">Discuss</a>
		</li>
		<li data-video-id="def456">
			<a class="lesson" href="/lessons/2">Lesson 2: Deployment</a>
		</li>
	</ul>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	client := NewClient(0)
	lessons, err := client.ScrapeLessons(context.Background(), model.Course{
		CourseID:  "dl-2024",
		CourseURL: server.URL + "/course",
	})
	require.NoError(t, err)

	require.Len(t, lessons, 2)
	assert.Equal(t, "abc123", lessons[0].VideoID)
	assert.Equal(t, "Lesson 1: Getting started", lessons[0].Name)
	assert.Equal(t, server.URL+"/lessons/1", lessons[0].LessonURL)
	assert.Equal(t, "https://forum.example.com/t/lesson-1", lessons[0].ForumURL)
	assert.Empty(t, lessons[1].ForumURL)
	assert.Equal(t, "dl-2024", lessons[1].CourseID)
}
