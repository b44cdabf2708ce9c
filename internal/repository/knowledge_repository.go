package repository

import (
	"context"
	"errors"
	"time"

	"pitchside/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

var ErrDocumentNotFound = errors.New("document not found")

type KnowledgeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewKnowledgeRepository(db *pgxpool.Pool, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes a document keyed by its content id. Re-adding the same
// content updates the mutable columns but keeps retrieval counters.
func (r *KnowledgeRepository) Upsert(ctx context.Context, doc *models.Document) error {
	query := squirrel.Insert("knowledge_base").
		Columns("id", "title", "body", "category", "source", "embedding", "retrieval_count", "created_at", "updated_at").
		Values(doc.ID, doc.Title, doc.Body, string(doc.Category), doc.Source,
			pgvector.NewVector(doc.Embedding), doc.RetrievalCount, doc.CreatedAt, doc.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			category = EXCLUDED.category,
			source = EXCLUDED.source,
			embedding = EXCLUDED.embedding,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *KnowledgeRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := squirrel.Select("id", "title", "body", "category", "source", "embedding",
		"retrieval_count", "last_retrieved", "created_at", "updated_at").
		From("knowledge_base").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	doc, err := scanDocument(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	return doc, nil
}

// List returns every stored document, used to hydrate the in-memory
// collection at startup.
func (r *KnowledgeRepository) List(ctx context.Context) ([]*models.Document, error) {
	query := squirrel.Select("id", "title", "body", "category", "source", "embedding",
		"retrieval_count", "last_retrieved", "created_at", "updated_at").
		From("knowledge_base").
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// TouchDocuments increments retrieval counters for the given ids. Callers
// treat failures as non-fatal, so errors are logged here and swallowed.
func (r *KnowledgeRepository) TouchDocuments(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}

	query := squirrel.Update("knowledge_base").
		Set("retrieval_count", squirrel.Expr("retrieval_count + 1")).
		Set("last_retrieved", time.Now()).
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		r.logger.Error("build touch query", zap.Error(err))
		return
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		r.logger.Warn("persist retrieval counters", zap.Error(err), zap.Int("docs", len(ids)))
	}
}

func (r *KnowledgeRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	query := squirrel.Select("category", "COUNT(*)").
		From("knowledge_base").
		GroupBy("category").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}

	return counts, rows.Err()
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	var category string
	var embedding pgvector.Vector
	var lastRetrieved *time.Time

	err := row.Scan(&doc.ID, &doc.Title, &doc.Body, &category, &doc.Source, &embedding,
		&doc.RetrievalCount, &lastRetrieved, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, err
	}

	doc.Category = models.DocumentCategory(category)
	doc.Embedding = embedding.Slice()
	if lastRetrieved != nil {
		doc.LastRetrieved = *lastRetrieved
	}
	return &doc, nil
}
