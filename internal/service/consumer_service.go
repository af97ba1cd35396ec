package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.EmbedChunkMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // malformed messages would retry forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chunk, err := uow.KnowledgeRepository().FindByID(ctx, payload.KnowledgeId)
	if err != nil {
		log.Printf("[ERROR] Failed to get chunk %s: %v", payload.KnowledgeId, err)
		msg.Nack()
		return
	}
	if chunk == nil {
		// Document re-ingested before we got here; nothing to embed.
		log.Printf("[WARN] Chunk not found: %s", payload.KnowledgeId)
		msg.Ack()
		return
	}

	res, err := cs.embeddingProvider.Generate(chunk.RevisedText, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for chunk %s: %v", chunk.Id, err)
		msg.Nack()
		return
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ChunkEmbeddingRepository().DeleteByKnowledgeId(ctx, chunk.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embedding for chunk %s: %v", chunk.Id, err)
		msg.Nack()
		return
	}

	if err := uow.ChunkEmbeddingRepository().Create(ctx, &entity.ChunkEmbedding{
		Id:          uuid.New(),
		KnowledgeId: chunk.Id,
		Embedding:   res.Embedding.Values,
		CreatedAt:   time.Now(),
	}); err != nil {
		log.Printf("[ERROR] Failed to store embedding for chunk %s: %v", chunk.Id, err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit embedding for chunk %s: %v", chunk.Id, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Embedded chunk %s (%s)", chunk.Id, chunk.DocumentName)
	msg.Ack()
}
