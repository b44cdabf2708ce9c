package retrieval

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pitchside/internal/models"
)

// stubEmbedder projects text onto a fixed vocabulary: component i counts how
// often vocab[i] appears. Deterministic by construction.
type stubEmbedder struct {
	vocab []string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	tokens := tokenize(text)
	vec := make([]float32, len(s.vocab))
	for i, word := range s.vocab {
		if tokens[word] {
			vec[i] = 1
		}
	}
	return vec, nil
}

func (s *stubEmbedder) Dimensions() int { return len(s.vocab) }

type failingEmbedder struct{ dims int }

func (f *failingEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("embedding provider unavailable")
}

func (f *failingEmbedder) Dimensions() int { return f.dims }

func testCollection(t *testing.T) *Collection {
	t.Helper()
	emb := &stubEmbedder{vocab: []string{"arsenal", "chelsea", "liverpool", "match", "betting", "value"}}
	return NewCollection(emb.Dimensions(), emb, zap.NewNop())
}

func indexDoc(t *testing.T, c *Collection, title, body string, category models.DocumentCategory) string {
	t.Helper()
	id, err := c.Index(context.Background(), &models.Document{
		Title:    title,
		Body:     body,
		Category: category,
	})
	require.NoError(t, err)
	return id
}

func TestQuery_EmptyCollection(t *testing.T) {
	c := testCollection(t)

	results := c.Query(context.Background(), "anything", 5, nil)
	assert.Empty(t, results)
}

func TestIndex_DimensionMismatch(t *testing.T) {
	c := testCollection(t)

	_, err := c.Index(context.Background(), &models.Document{
		ID:        "doc-1",
		Title:     "Arsenal profile",
		Body:      "Arsenal play in the Premier League",
		Category:  models.CategoryTeam,
		Embedding: []float32{0.1, 0.2}, // wrong length
	})
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Zero(t, c.Len(), "nothing may be stored on rejection")
}

func TestIndex_Idempotent(t *testing.T) {
	c := testCollection(t)

	id1 := indexDoc(t, c, "Arsenal profile", "Arsenal are a London club", models.CategoryTeam)
	id2 := indexDoc(t, c, "Arsenal profile", "Arsenal are a London club", models.CategoryTeam)

	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, c.Len())

	first, ok := c.Get(id1)
	require.True(t, ok)
	second, _ := c.Get(id2)
	assert.Equal(t, first.Embedding, second.Embedding, "re-indexing must not drift the embedding")
}

func TestIndex_CountersSurviveReindex(t *testing.T) {
	c := testCollection(t)

	id := indexDoc(t, c, "Arsenal profile", "Arsenal match history", models.CategoryTeam)
	c.Query(context.Background(), "arsenal", 1, nil)

	indexDoc(t, c, "Arsenal profile", "Arsenal match history", models.CategoryTeam)

	doc, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, int64(1), doc.RetrievalCount)
}

func TestQuery_TopKClampAndOrdering(t *testing.T) {
	c := testCollection(t)

	indexDoc(t, c, "Arsenal profile", "Arsenal match analysis", models.CategoryTeam)
	indexDoc(t, c, "Chelsea profile", "Chelsea match analysis", models.CategoryTeam)
	indexDoc(t, c, "Value betting", "Finding value in betting markets", models.CategoryBettingStrategy)

	results := c.Query(context.Background(), "arsenal match", 10, nil)
	require.Len(t, results, 3, "topK beyond collection size returns all documents")

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score,
			"scores must be non-increasing")
	}
	assert.Equal(t, "Arsenal profile", results[0].Document.Title)

	results = c.Query(context.Background(), "arsenal match", 2, nil)
	assert.Len(t, results, 2)
}

func TestQuery_TieBreakByDocumentID(t *testing.T) {
	// Identical bodies under different explicit ids produce equal scores
	c := testCollection(t)

	for _, id := range []string{"doc-b", "doc-a", "doc-c"} {
		_, err := c.Index(context.Background(), &models.Document{
			ID:       id,
			Title:    "Liverpool form",
			Body:     "Liverpool recent match form",
			Category: models.CategoryTeam,
		})
		require.NoError(t, err)
	}

	results := c.Query(context.Background(), "liverpool form", 3, nil)
	require.Len(t, results, 3)
	assert.Equal(t, "doc-a", results[0].Document.ID)
	assert.Equal(t, "doc-b", results[1].Document.ID)
	assert.Equal(t, "doc-c", results[2].Document.ID)
}

func TestQuery_ProfileAugmentationBoostsFavoriteTeams(t *testing.T) {
	c := testCollection(t)

	arsenalID := indexDoc(t, c, "Arsenal next match", "Arsenal host their next match at the Emirates", models.CategoryMatch)
	indexDoc(t, c, "Chelsea next match", "Chelsea travel away for their next match", models.CategoryMatch)

	plain := c.Query(context.Background(), "next match preview", 2, nil)
	personalized := c.Query(context.Background(), "next match preview", 2, &QueryProfile{
		FavoriteTeams: []string{"Arsenal"},
	})

	require.Len(t, personalized, 2)
	assert.Equal(t, arsenalID, personalized[0].Document.ID,
		"favorite-team document must rank first for the augmented query")

	var plainArsenal, personalArsenal float64
	for _, r := range plain {
		if r.Document.ID == arsenalID {
			plainArsenal = r.Score
		}
	}
	for _, r := range personalized {
		if r.Document.ID == arsenalID {
			personalArsenal = r.Score
		}
	}
	assert.Greater(t, personalArsenal, plainArsenal)
}

func TestQuery_DegradesToKeywordOnlyOnEmbedderFailure(t *testing.T) {
	emb := &failingEmbedder{dims: 4}
	c := NewCollection(4, emb, zap.NewNop())

	_, err := c.Index(context.Background(), &models.Document{
		ID:        "doc-1",
		Title:     "Arsenal analysis",
		Body:      "Arsenal pressing statistics",
		Category:  models.CategoryStatistic,
		Embedding: []float32{1, 0, 0, 0},
	})
	require.NoError(t, err)
	_, err = c.Index(context.Background(), &models.Document{
		ID:        "doc-2",
		Title:     "Handicap markets",
		Body:      "Asian handicap explained",
		Category:  models.CategoryBettingStrategy,
		Embedding: []float32{0, 1, 0, 0},
	})
	require.NoError(t, err)

	results := c.Query(context.Background(), "arsenal statistics", 2, nil)
	require.Len(t, results, 2, "embedder failure must not fail the query")

	assert.Equal(t, "doc-1", results[0].Document.ID)
	for _, r := range results {
		assert.Zero(t, r.VectorScore)
		assert.Equal(t, r.KeywordScore, r.Score)
	}
}

func TestQuery_IndexEmbedderFailure(t *testing.T) {
	emb := &failingEmbedder{dims: 4}
	c := NewCollection(4, emb, zap.NewNop())

	// Indexing without a supplied embedding needs the embedder and fails hard
	_, err := c.Index(context.Background(), &models.Document{
		Title: "Arsenal", Body: "Arsenal", Category: models.CategoryTeam,
	})
	assert.Error(t, err)
	assert.Zero(t, c.Len())
}

func TestQuery_UpdatesUsageCounters(t *testing.T) {
	c := testCollection(t)
	id := indexDoc(t, c, "Arsenal profile", "Arsenal match record", models.CategoryTeam)

	c.Query(context.Background(), "arsenal", 1, nil)
	c.Query(context.Background(), "arsenal", 1, nil)

	doc, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, int64(2), doc.RetrievalCount)
	assert.False(t, doc.LastRetrieved.IsZero())
}

func TestCollection_ConcurrentReadsAndWrites(t *testing.T) {
	c := testCollection(t)
	indexDoc(t, c, "Seed", "arsenal chelsea liverpool", models.CategoryTeam)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_, err := c.Index(context.Background(), &models.Document{
				Title:    fmt.Sprintf("Doc %d", n),
				Body:     "arsenal match betting",
				Category: models.CategoryMatch,
			})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			results := c.Query(context.Background(), "arsenal betting", 5, nil)
			assert.NotEmpty(t, results)
		}()
	}
	wg.Wait()

	assert.Equal(t, 9, c.Len())
}

func TestCategoryCounts(t *testing.T) {
	c := testCollection(t)
	indexDoc(t, c, "Arsenal", "Arsenal club profile", models.CategoryTeam)
	indexDoc(t, c, "Chelsea", "Chelsea club profile", models.CategoryTeam)
	indexDoc(t, c, "Value betting", "Betting on value spots", models.CategoryBettingStrategy)

	counts := c.CategoryCounts()
	assert.Equal(t, 2, counts[models.CategoryTeam])
	assert.Equal(t, 1, counts[models.CategoryBettingStrategy])
}
