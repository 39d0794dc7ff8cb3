// Package scraper loads the raw inputs of the indexing pipeline:
// yt-dlp style metadata documents, caption tracks, and the course and
// lesson seed tables.
package scraper

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"fastsearch/internal/app/model"
)

// rawMetadata mirrors the subset of a yt-dlp info JSON the pipeline
// consumes. Everything else in the document is ignored.
type rawMetadata struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Thumbnail   string                   `json:"thumbnail"`
	Description string                   `json:"description"`
	Channel     string                   `json:"channel"`
	Duration    float64                  `json:"duration"`
	UploadDate  string                   `json:"upload_date"`
	WebpageURL  string                   `json:"webpage_url"`
	Language    *string                  `json:"language"`
	Subtitles   map[string][]rawSubtitle `json:"subtitles"`
	Thumbnails  []rawThumbnail           `json:"thumbnails"`
	Categories  []string                 `json:"categories"`
	Tags        []string                 `json:"tags"`
}

type rawSubtitle struct {
	URL      string  `json:"url"`
	Ext      string  `json:"ext"`
	Name     string  `json:"name"`
	Protocol *string `json:"protocol"`
}

type rawThumbnail struct {
	URL        string  `json:"url"`
	ID         string  `json:"id"`
	Preference int     `json:"preference"`
	Height     *int    `json:"height"`
	Width      *int    `json:"width"`
	Resolution *string `json:"resolution"`
}

// DecodeMetadata reads one yt-dlp info JSON document and normalizes it.
// The video id is stamped into every subtitle and thumbnail entry so
// they can travel independently of the parent document.
func DecodeMetadata(r io.Reader) (model.VideoMetadata, error) {
	var raw rawMetadata
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return model.VideoMetadata{}, fmt.Errorf("failed to decode video metadata: %w", err)
	}
	if raw.ID == "" {
		return model.VideoMetadata{}, fmt.Errorf("video metadata has no id")
	}

	meta := model.VideoMetadata{
		VideoID:     raw.ID,
		Title:       raw.Title,
		Thumbnail:   raw.Thumbnail,
		Description: raw.Description,
		Channel:     raw.Channel,
		Duration:    int(raw.Duration),
		UploadDate:  raw.UploadDate,
		WebpageURL:  raw.WebpageURL,
		Language:    raw.Language,
		Subtitles:   make(map[string][]model.Subtitle, len(raw.Subtitles)),
		Categories:  raw.Categories,
		Tags:        raw.Tags,
	}

	for language, tracks := range raw.Subtitles {
		entries := make([]model.Subtitle, 0, len(tracks))
		for _, track := range tracks {
			entries = append(entries, model.Subtitle{
				VideoID:  raw.ID,
				Language: language,
				URL:      track.URL,
				Ext:      track.Ext,
				Name:     track.Name,
				Protocol: track.Protocol,
			})
		}
		meta.Subtitles[language] = entries
	}

	for _, thumb := range raw.Thumbnails {
		meta.Thumbnails = append(meta.Thumbnails, model.Thumbnail{
			VideoID:     raw.ID,
			URL:         thumb.URL,
			ThumbnailID: thumb.ID,
			Preference:  thumb.Preference,
			Height:      thumb.Height,
			Width:       thumb.Width,
			Resolution:  thumb.Resolution,
		})
	}

	return meta, nil
}

// LoadMetadataFile decodes the metadata document at path.
func LoadMetadataFile(path string) (model.VideoMetadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer file.Close()
	return DecodeMetadata(file)
}

// CaptionTrack picks the preferred caption track for a language: the
// first VTT entry, falling back to the first entry of any format.
func CaptionTrack(meta model.VideoMetadata, language string) (model.Subtitle, bool) {
	tracks := meta.Subtitles[language]
	if len(tracks) == 0 {
		return model.Subtitle{}, false
	}
	for _, track := range tracks {
		if track.Ext == "vtt" {
			return track, true
		}
	}
	return tracks[0], true
}
