package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeChunk is one titled subdivision of a source document, the unit
// of retrieval. OutlineLevel/OutlineSublevel give its hierarchical position
// within the document's table of contents.
type KnowledgeChunk struct {
	Id              uuid.UUID
	DocumentName    string
	Title           string
	Page            int
	RevisedText     string
	OutlineLevel    int
	OutlineSublevel int
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// ChunkEmbedding holds the pooled embedding vector for one chunk - exactly
// one vector per chunk, so similarity scoring is one-vector-per-section.
type ChunkEmbedding struct {
	Id          uuid.UUID
	KnowledgeId uuid.UUID
	Embedding   []float32
	CreatedAt   time.Time
}

// EmbeddingRef is the (knowledge id, vector) pair the retriever's linear
// scan operates on.
type EmbeddingRef struct {
	KnowledgeId uuid.UUID
	Embedding   []float32
}
