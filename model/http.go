package model

type ConvertYoutubeRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	JobID string `json:"job_id"`
}

type ConvertResponse struct {
	Success     bool   `json:"success"`
	Title       string `json:"title"`
	DownloadURL string `json:"download_url"`
	NotesCount  int    `json:"notes_count"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type ProgressResponse struct {
	Percent int    `json:"percent"`
	Message string `json:"message"`
	Details string `json:"details"`
}
