package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type SearchResponse struct {
	Matches []RetrievedMatch `json:"matches"`
}

type UploadResponse struct {
	OriginalName string `json:"original_name,omitempty"`
	TotalChunks  int    `json:"total_chunks"`
}
