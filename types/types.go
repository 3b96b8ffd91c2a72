package types

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketAsk        = "ask"
	TypeWebsocketAnswer     = "answer"
	TypeWebsocketDelta      = "delta"
	TypeWebsocketProcessing = "processing"
	TypeWebsocketError      = "error"
)

// Confidence labels derived from the top retrieval score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// SourceCitation points the user at where an answer came from.
type SourceCitation struct {
	Pages          []int   `json:"pages"`
	Section        string  `json:"section,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
}

// RAGResponse is the structured result of one pipeline query.
type RAGResponse struct {
	Answer     string           `json:"answer"`
	Sources    []SourceCitation `json:"sources"`
	Confidence Confidence       `json:"confidence"`
}

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebsocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebsocketAskPayload struct {
	Question string `json:"question"`
}

type WebsocketDeltaPayload struct {
	Delta string `json:"delta"`
}

// StreamHandler receives incremental pieces of a generated answer.
type StreamHandler func(delta string)
