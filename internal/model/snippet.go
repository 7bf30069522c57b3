package model

// Snippet is a titled block of reusable text or code.
type Snippet struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Code  string `json:"code"`
}
