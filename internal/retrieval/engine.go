package retrieval

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"pitchside/internal/models"
)

// ErrDimensionMismatch is returned when a supplied embedding does not match
// the collection's fixed dimensionality. Nothing is stored in that case.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Embedder computes fixed-length embeddings. Implementations must be
// deterministic for identical input so retrieval stays reproducible.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// QueryProfile carries the preference tokens used to personalize a query.
type QueryProfile struct {
	FavoriteTeams   []string
	FavoriteLeagues []string
}

// RankedResult is one retrieved document with its blended score and the
// contributing signal breakdown.
type RankedResult struct {
	Document     models.Document
	Score        float64
	VectorScore  float64
	KeywordScore float64
}

// Collection is an in-memory document collection ranked by cosine similarity
// blended with keyword overlap. It is safe for concurrent use: indexing is
// mutually exclusive with itself and queries see either the pre- or
// post-index state, never a half-inserted document.
type Collection struct {
	mu         sync.RWMutex
	docs       map[string]*models.Document
	tokens     map[string]map[string]bool
	dimensions int
	embedder   Embedder
	logger     *zap.Logger
}

func NewCollection(dimensions int, embedder Embedder, logger *zap.Logger) *Collection {
	return &Collection{
		docs:       make(map[string]*models.Document),
		tokens:     make(map[string]map[string]bool),
		dimensions: dimensions,
		embedder:   embedder,
		logger:     logger,
	}
}

// Index embeds the document body (unless an embedding is supplied) and stores
// it under a stable, content-derived identifier. Re-indexing the same content
// yields the same stored entry; usage counters survive a re-index.
func (c *Collection) Index(ctx context.Context, doc *models.Document) (string, error) {
	if doc.ID == "" {
		doc.ID = models.DocumentID(doc.Title, doc.Body)
	}

	embedding := doc.Embedding
	if embedding == nil {
		vec, err := c.embedder.Embed(ctx, doc.Body)
		if err != nil {
			return "", err
		}
		embedding = vec
	}
	if len(embedding) != c.dimensions {
		return "", ErrDimensionMismatch
	}

	stored := *doc
	stored.Embedding = embedding

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.docs[stored.ID]; ok {
		stored.RetrievalCount = prev.RetrievalCount
		stored.LastRetrieved = prev.LastRetrieved
	}
	c.docs[stored.ID] = &stored
	c.tokens[stored.ID] = tokenize(stored.Title + " " + stored.Body)

	return stored.ID, nil
}

// Query returns at most topK documents ranked by blended score. An empty
// collection yields an empty result set. If the embedder fails or times out
// the query degrades to keyword-only scoring instead of failing.
func (c *Collection) Query(ctx context.Context, text string, topK int, profile *QueryProfile) []RankedResult {
	if topK <= 0 || c.Len() == 0 {
		return nil
	}

	augmented := augmentQuery(text, profile)

	queryVec, err := c.embedder.Embed(ctx, augmented)
	vectorOK := err == nil && len(queryVec) == c.dimensions
	if !vectorOK {
		c.logger.Warn("Embedding unavailable, degrading to keyword-only ranking",
			zap.Error(err))
	}

	queryTokens := tokenize(augmented)

	c.mu.RLock()
	results := make([]RankedResult, 0, len(c.docs))
	for id, doc := range c.docs {
		kwScore := keywordOverlap(queryTokens, c.tokens[id])

		var score, vecScore float64
		if vectorOK {
			vecScore = clamp01(cosineSimilarity(queryVec, doc.Embedding))
			score = vectorWeight*vecScore + keywordWeight*kwScore
		} else {
			score = kwScore
		}

		results = append(results, RankedResult{
			Document:     *doc,
			Score:        score,
			VectorScore:  vecScore,
			KeywordScore: kwScore,
		})
	}
	c.mu.RUnlock()

	// Score descending, ties by ascending document id for determinism
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID < results[j].Document.ID
	})

	if topK < len(results) {
		results = results[:topK]
	}

	c.touch(results)

	return results
}

// touch updates usage counters for the returned documents. Bookkeeping only;
// it never fails the query path.
func (c *Collection) touch(results []RankedResult) {
	if len(results) == 0 {
		return
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range results {
		if doc, ok := c.docs[results[i].Document.ID]; ok {
			doc.RetrievalCount++
			doc.LastRetrieved = now
		}
	}
}

// Len returns the number of indexed documents.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

// Dimensions returns the collection's fixed embedding dimensionality.
func (c *Collection) Dimensions() int {
	return c.dimensions
}

// Get returns a snapshot of one document by id.
func (c *Collection) Get(id string) (models.Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.docs[id]
	if !ok {
		return models.Document{}, false
	}
	return *doc, true
}

// CategoryCounts returns the number of documents per category.
func (c *Collection) CategoryCounts() map[models.DocumentCategory]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counts := make(map[models.DocumentCategory]int)
	for _, doc := range c.docs {
		counts[doc.Category]++
	}
	return counts
}

// augmentQuery deterministically extends the query text with profile-derived
// tokens. The stored query and the caller's text are never mutated.
func augmentQuery(text string, profile *QueryProfile) string {
	if profile == nil {
		return text
	}

	var extra []string
	if len(profile.FavoriteTeams) > 0 {
		teams := append([]string(nil), profile.FavoriteTeams...)
		sort.Strings(teams)
		extra = append(extra, teams...)
	}
	if len(profile.FavoriteLeagues) > 0 {
		leagues := append([]string(nil), profile.FavoriteLeagues...)
		sort.Strings(leagues)
		extra = append(extra, leagues...)
	}

	if len(extra) == 0 {
		return text
	}
	return text + " " + strings.Join(extra, " ")
}
