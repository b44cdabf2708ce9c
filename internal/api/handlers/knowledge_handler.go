package handlers

import (
	"strings"
	"time"

	"pitchside/internal/dto"
	"pitchside/internal/models"
	"pitchside/internal/repository"
	"pitchside/internal/service"
	"pitchside/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type KnowledgeHandler struct {
	knowledgeService *service.KnowledgeService
	logger           *zap.Logger
}

func NewKnowledgeHandler(knowledgeService *service.KnowledgeService, logger *zap.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{
		knowledgeService: knowledgeService,
		logger:           logger,
	}
}

// AddDocument godoc
// @Summary Add a knowledge document
// @Description Embed and index a new document in the football knowledge base
// @Tags knowledge
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddDocumentRequest true "Document"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/knowledge [post]
func (h *KnowledgeHandler) AddDocument(c *fiber.Ctx) error {
	var req dto.AddDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validation.ValidateRequest(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	doc, err := h.knowledgeService.AddDocument(c.Context(), &req)
	if err != nil {
		if err == service.ErrInvalidCategory {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid document category",
			})
		}
		h.logger.Error("Add document failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add document",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(documentResponse(doc, false))
}

// GetDocument godoc
// @Summary Get a knowledge document
// @Tags knowledge
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/knowledge/{id} [get]
func (h *KnowledgeHandler) GetDocument(c *fiber.Ctx) error {
	doc, err := h.knowledgeService.GetDocument(c.Context(), c.Params("id"))
	if err != nil {
		if err == repository.ErrDocumentNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		}
		h.logger.Error("Get document failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load document",
		})
	}

	return c.JSON(documentResponse(doc, true))
}

// ListDocuments godoc
// @Summary List knowledge documents
// @Tags knowledge
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.DocumentResponse
// @Router /api/v1/knowledge [get]
func (h *KnowledgeHandler) ListDocuments(c *fiber.Ctx) error {
	docs, err := h.knowledgeService.ListDocuments(c.Context())
	if err != nil {
		h.logger.Error("List documents failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list documents",
		})
	}

	resp := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, documentResponse(doc, false))
	}
	return c.JSON(resp)
}

// SearchKnowledge godoc
// @Summary Search the knowledge base
// @Description Run a retrieval query directly against the indexed documents
// @Tags knowledge
// @Produce json
// @Security BearerAuth
// @Param q query string true "Query text"
// @Param top_k query int false "Maximum number of results" default(5)
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/knowledge/search [get]
func (h *KnowledgeHandler) SearchKnowledge(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter q is required",
		})
	}
	topK := c.QueryInt("top_k", 5)

	results := h.knowledgeService.Search(c.Context(), query, topK)

	resp := dto.SearchResponse{
		Query:   query,
		Results: make([]dto.SearchResultResponse, 0, len(results)),
	}
	for _, r := range results {
		resp.Results = append(resp.Results, dto.SearchResultResponse{
			DocumentID: r.Document.ID,
			Title:      r.Document.Title,
			Body:       r.Document.Body,
			Category:   string(r.Document.Category),
			Score:      r.Score,
		})
	}

	return c.JSON(resp)
}

// GetStats godoc
// @Summary Knowledge base statistics
// @Description Collection size, embedding dimensionality and per-category counts
// @Tags knowledge
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.KnowledgeStatsResponse
// @Router /api/v1/knowledge/stats [get]
func (h *KnowledgeHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.knowledgeService.Stats(c.Context())
	if err != nil {
		h.logger.Error("Knowledge stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load stats",
		})
	}
	return c.JSON(stats)
}

func documentResponse(doc *models.Document, includeBody bool) dto.DocumentResponse {
	resp := dto.DocumentResponse{
		ID:             doc.ID,
		Title:          doc.Title,
		Category:       string(doc.Category),
		Source:         doc.Source,
		RetrievalCount: doc.RetrievalCount,
		CreatedAt:      doc.CreatedAt.Format(time.RFC3339),
	}
	if includeBody {
		resp.Body = doc.Body
	}
	return resp
}
