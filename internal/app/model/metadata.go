package model

// Subtitle describes one caption track advertised in the scraped video
// metadata. Optional fields stay nil when the extractor omits them.
type Subtitle struct {
	VideoID  string  `json:"video_id"`
	Language string  `json:"language"`
	URL      string  `json:"url"`
	Ext      string  `json:"ext"`
	Name     string  `json:"name"`
	Protocol *string `json:"protocol,omitempty"`
}

// Thumbnail is one entry of the scraped thumbnail list.
type Thumbnail struct {
	VideoID     string  `json:"video_id"`
	URL         string  `json:"url"`
	ThumbnailID string  `json:"id"`
	Preference  int     `json:"preference"`
	Height      *int    `json:"height,omitempty"`
	Width       *int    `json:"width,omitempty"`
	Resolution  *string `json:"resolution,omitempty"`
}

// VideoMetadata is the normalized slice of the scraped (yt-dlp style)
// metadata document that the pipeline actually consumes. Unrecognized
// keys in the source document are dropped at decode time.
type VideoMetadata struct {
	VideoID     string                 `json:"video_id"`
	Title       string                 `json:"title"`
	Thumbnail   string                 `json:"thumbnail"`
	Description string                 `json:"description"`
	Channel     string                 `json:"channel"`
	Duration    int                    `json:"duration"`
	UploadDate  string                 `json:"upload_date"`
	WebpageURL  string                 `json:"webpage_url"`
	Language    *string                `json:"language"`
	Subtitles   map[string][]Subtitle  `json:"subtitles"`
	Thumbnails  []Thumbnail            `json:"thumbnails"`
	Categories  []string               `json:"categories"`
	Tags        []string               `json:"tags"`
}

// Lesson links a video to its course lesson page and forum thread.
type Lesson struct {
	VideoID   string
	CourseID  string
	Name      string
	LessonURL string
	ForumURL  string
}

// Course is one row of the course seed table.
type Course struct {
	CourseID  string
	Name      string
	CourseURL string
}
