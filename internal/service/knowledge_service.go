package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pitchside/internal/dto"
	"pitchside/internal/models"
	"pitchside/internal/repository"
	"pitchside/internal/retrieval"

	"go.uber.org/zap"
)

var ErrInvalidCategory = errors.New("invalid document category")

// KnowledgeService keeps the persisted knowledge base and the in-memory
// retrieval collection in sync. Postgres is the source of truth; the
// collection is rebuilt from it at startup.
type KnowledgeService struct {
	knowledgeRepo *repository.KnowledgeRepository
	collection    *retrieval.Collection
	embedder      retrieval.Embedder
	logger        *zap.Logger
}

func NewKnowledgeService(
	knowledgeRepo *repository.KnowledgeRepository,
	collection *retrieval.Collection,
	embedder retrieval.Embedder,
	logger *zap.Logger,
) *KnowledgeService {
	return &KnowledgeService{
		knowledgeRepo: knowledgeRepo,
		collection:    collection,
		embedder:      embedder,
		logger:        logger,
	}
}

// Hydrate loads every persisted document into the in-memory collection.
// Called once at startup before the server accepts traffic.
func (s *KnowledgeService) Hydrate(ctx context.Context) error {
	docs, err := s.knowledgeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}

	for _, doc := range docs {
		if _, err := s.collection.Index(ctx, doc); err != nil {
			return fmt.Errorf("index document %s: %w", doc.ID, err)
		}
	}

	s.logger.Info("knowledge base hydrated", zap.Int("documents", len(docs)))
	return nil
}

// AddDocument embeds and stores a new document, then indexes it for
// retrieval. Re-adding identical content is a no-op update.
func (s *KnowledgeService) AddDocument(ctx context.Context, req *dto.AddDocumentRequest) (*models.Document, error) {
	category := models.DocumentCategory(req.Category)
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	// Embed the body only, matching what the collection embeds when it
	// derives a vector itself.
	embedding, err := s.embedder.Embed(ctx, req.Body)
	if err != nil {
		return nil, fmt.Errorf("embed document: %w", err)
	}

	now := time.Now()
	doc := &models.Document{
		ID:        models.DocumentID(req.Title, req.Body),
		Title:     req.Title,
		Body:      req.Body,
		Category:  category,
		Source:    req.Source,
		Embedding: embedding,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.knowledgeRepo.Upsert(ctx, doc); err != nil {
		return nil, fmt.Errorf("persist document: %w", err)
	}

	if _, err := s.collection.Index(ctx, doc); err != nil {
		return nil, fmt.Errorf("index document: %w", err)
	}

	s.logger.Info("document added",
		zap.String("doc_id", doc.ID),
		zap.String("category", string(doc.Category)),
	)

	return doc, nil
}

func (s *KnowledgeService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.knowledgeRepo.GetByID(ctx, id)
}

func (s *KnowledgeService) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	return s.knowledgeRepo.List(ctx)
}

// Search runs a direct retrieval query over the indexed knowledge base,
// without any profile augmentation.
func (s *KnowledgeService) Search(ctx context.Context, query string, topK int) []retrieval.RankedResult {
	return s.collection.Query(ctx, query, topK, nil)
}

// Stats reports collection size and per-category counts from the live index.
// When the collection is empty (not hydrated yet) the persisted counts are
// reported instead.
func (s *KnowledgeService) Stats(ctx context.Context) (*dto.KnowledgeStatsResponse, error) {
	if s.collection.Len() > 0 {
		counts := s.collection.CategoryCounts()
		byCategory := make(map[string]int, len(counts))
		for category, n := range counts {
			byCategory[string(category)] = n
		}
		return &dto.KnowledgeStatsResponse{
			TotalDocuments: s.collection.Len(),
			Dimensions:     s.collection.Dimensions(),
			ByCategory:     byCategory,
		}, nil
	}

	byCategory, err := s.knowledgeRepo.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	total := 0
	for _, n := range byCategory {
		total += n
	}
	return &dto.KnowledgeStatsResponse{
		TotalDocuments: total,
		Dimensions:     s.collection.Dimensions(),
		ByCategory:     byCategory,
	}, nil
}
