package dto

import (
	"github.com/google/uuid"
)

type DocumentListResponse struct {
	Documents []string `json:"documents"`
	Count     int      `json:"count"`
}

type KeywordsResponse struct {
	Count  int      `json:"count"`
	Sample []string `json:"sample"`
}

// EmbedChunkMessage is the payload published per stored chunk on the
// ingestion pubsub; the consumer embeds and persists the vector.
type EmbedChunkMessage struct {
	KnowledgeId uuid.UUID `json:"knowledge_id"`
}
