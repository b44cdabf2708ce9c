package dto

type ChatRequest struct {
	SessionID string `json:"session_id,omitempty" validate:"omitempty,uuid4"`
	Message   string `json:"message" validate:"required,min=1,max=4000"`
}

type ChatResponse struct {
	SessionID     string           `json:"session_id"`
	Reply         string           `json:"reply"`
	QueryCategory string           `json:"query_category"`
	Sources       []SourceResponse `json:"sources,omitempty"`
}

type SourceResponse struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	Score      float64 `json:"score"`
}

type ChatMessageResponse struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

type ChatHistoryResponse struct {
	SessionID string                `json:"session_id"`
	Messages  []ChatMessageResponse `json:"messages"`
}
