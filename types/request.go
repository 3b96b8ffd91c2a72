package types

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit,omitempty"`
}

type UploadRequest struct {
	Title string `json:"title"`
}
