package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

type DocumentCategory string

const (
	CategoryTeam            DocumentCategory = "team"
	CategoryLeague          DocumentCategory = "league"
	CategoryMatch           DocumentCategory = "match"
	CategoryPlayer          DocumentCategory = "player"
	CategoryStatistic       DocumentCategory = "statistic"
	CategoryBettingStrategy DocumentCategory = "betting_strategy"
)

// DocumentCategories lists the closed set of valid knowledge categories.
var DocumentCategories = []DocumentCategory{
	CategoryTeam,
	CategoryLeague,
	CategoryMatch,
	CategoryPlayer,
	CategoryStatistic,
	CategoryBettingStrategy,
}

func (c DocumentCategory) Valid() bool {
	for _, v := range DocumentCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Document is one entry of the football knowledge base. Title, body, category
// and embedding are immutable once indexed; only the usage counters change.
type Document struct {
	ID             string           `db:"id"`
	Title          string           `db:"title"`
	Body           string           `db:"body"`
	Category       DocumentCategory `db:"category"`
	Source         string           `db:"source"`
	Embedding      []float32        `db:"embedding"`
	RetrievalCount int64            `db:"retrieval_count"`
	LastRetrieved  time.Time        `db:"last_retrieved"`
	CreatedAt      time.Time        `db:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"`
}

// DocumentID derives a stable identifier from title and body, so indexing the
// same content twice lands on the same entry.
func DocumentID(title, body string) string {
	h := sha256.Sum256([]byte(title + "\x00" + body))
	return hex.EncodeToString(h[:])[:12]
}
