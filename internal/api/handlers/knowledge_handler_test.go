package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"pitchside/internal/dto"
	"pitchside/internal/models"
	"pitchside/internal/retrieval"
	"pitchside/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedEmbedder struct {
	vec []float32
}

func (e *fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.vec, nil
}

func (e *fixedEmbedder) Dimensions() int {
	return len(e.vec)
}

func searchTestApp(t *testing.T) *fiber.App {
	t.Helper()

	embedder := &fixedEmbedder{vec: []float32{1, 0, 0}}
	collection := retrieval.NewCollection(3, embedder, zap.NewNop())

	now := time.Now()
	docs := []*models.Document{
		{Title: "Liverpool Profile", Body: "High pressing, fast transitions, strong at Anfield.",
			Category: models.CategoryTeam, Embedding: []float32{1, 0, 0}, CreatedAt: now, UpdatedAt: now},
		{Title: "Bankroll Management", Body: "Stake one to three percent per bet.",
			Category: models.CategoryBettingStrategy, Embedding: []float32{0, 1, 0}, CreatedAt: now, UpdatedAt: now},
	}
	for _, doc := range docs {
		_, err := collection.Index(context.Background(), doc)
		require.NoError(t, err)
	}

	svc := service.NewKnowledgeService(nil, collection, embedder, zap.NewNop())
	handler := NewKnowledgeHandler(svc, zap.NewNop())

	app := fiber.New()
	app.Get("/api/v1/knowledge/search", handler.SearchKnowledge)
	return app
}

func TestSearchKnowledge_ReturnsRankedResults(t *testing.T) {
	app := searchTestApp(t)

	req := httptest.NewRequest("GET", "/api/v1/knowledge/search?q=pressing&top_k=1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.SearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "pressing", body.Query)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Liverpool Profile", body.Results[0].Title)
	assert.Equal(t, "team", body.Results[0].Category)
	assert.Greater(t, body.Results[0].Score, 0.0)
}

func TestSearchKnowledge_MissingQueryRejected(t *testing.T) {
	app := searchTestApp(t)

	req := httptest.NewRequest("GET", "/api/v1/knowledge/search", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
