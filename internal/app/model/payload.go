package model

// SearchPayload is the denormalized metadata stored alongside each vector
// in the index. Lesson, Course and Forum are nil when the segment belongs
// to no catalogued lesson.
//
// Payload rows are keyed by insertion order: row i of the payload table
// must correspond to row i of the embedding matrix for the same run.
type SearchPayload struct {
	VideoID   string  `json:"video_id"`
	Title     string  `json:"title"`
	Text      string  `json:"text"`
	Start     int     `json:"start"`
	Thumbnail string  `json:"thumbnail"`
	Lesson    *string `json:"lesson"`
	Course    *string `json:"course"`
	Forum     *string `json:"forum"`
}
