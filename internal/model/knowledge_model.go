package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type KnowledgeChunk struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentName    string    `gorm:"type:varchar(255);index:idx_document_outline"`
	Title           string    `gorm:"type:varchar(255)"`
	Page            int
	RevisedText     string `gorm:"type:text"`
	OutlineLevel    int    `gorm:"index:idx_document_outline"`
	OutlineSublevel int
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       *time.Time
}

func (KnowledgeChunk) TableName() string {
	return "knowledge_chunks"
}

type ChunkEmbedding struct {
	Id          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	KnowledgeId uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Embedding   pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text and text-embedding-004 use 768 dimensions
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

func (ChunkEmbedding) TableName() string {
	return "chunk_embeddings"
}
