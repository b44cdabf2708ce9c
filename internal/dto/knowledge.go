package dto

type AddDocumentRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=256"`
	Body     string `json:"body" validate:"required,min=1"`
	Category string `json:"category" validate:"required,oneof=team league match player statistic betting_strategy"`
	Source   string `json:"source,omitempty" validate:"omitempty,max=256"`
}

type DocumentResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Body           string `json:"body,omitempty"`
	Category       string `json:"category"`
	Source         string `json:"source,omitempty"`
	RetrievalCount int64  `json:"retrieval_count"`
	CreatedAt      string `json:"created_at"`
}

type SearchResultResponse struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Body       string  `json:"body"`
	Category   string  `json:"category"`
	Score      float64 `json:"score"`
}

type SearchResponse struct {
	Query   string                 `json:"query"`
	Results []SearchResultResponse `json:"results"`
}

type KnowledgeStatsResponse struct {
	TotalDocuments int            `json:"total_documents"`
	Dimensions     int            `json:"dimensions"`
	ByCategory     map[string]int `json:"by_category"`
}
