package bootstrap

import (
	"context"
	"fmt"
	"log"

	"rag-chat-be/internal/config"
	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/controller"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/repository/implementation"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/internal/service"
	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/llm/factory"
	"rag-chat-be/pkg/preprocess"
	"rag-chat-be/pkg/rag/answer"
	"rag-chat-be/pkg/rag/history"
	"rag-chat-be/pkg/rag/pipeline"
	"rag-chat-be/pkg/rag/prompt"
	"rag-chat-be/pkg/rag/retriever"
	"rag-chat-be/pkg/rag/stream"
	"rag-chat-be/pkg/trace"

	pktNats "rag-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const embedTopicName = "knowledge.embed"

type Container struct {
	// Controllers
	AuthController          controller.IAuthController
	ChatController          controller.IChatController
	KnowledgebaseController controller.IKnowledgebaseController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
	KeywordService  service.IKeywordService

	// Ingestion (exposed for cmd/ingest)
	IngestService service.IIngestService

	// Chat pipeline (exposed for cmd/evaluate)
	ChatService service.IChatService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	knowledgeRepo := implementation.NewKnowledgeRepository(db)
	embeddingRepo := implementation.NewChunkEmbeddingRepository(db)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Model providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	}

	// Redis lookaside cache over the embedding provider; embeddings for
	// identical text never change, so cache failures only cost latency.
	if cfg.App.RedisURL != "" {
		if redisOpts, err := redis.ParseURL(cfg.App.RedisURL); err == nil {
			embeddingProvider = embedding.NewCachedProvider(embeddingProvider, redis.NewClient(redisOpts))
		} else {
			log.Printf("[WARN] Invalid REDIS_URL, embedding cache disabled: %v", err)
		}
	}

	tokenizer := llm.NewWordTokenizer()

	if err := checkSystemPromptBudget(tokenizer, cfg.Rag.MaxSystemPromptLength); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		tokenizer,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Trace sink
	var sink trace.Sink
	switch cfg.Trace.Sink {
	case "nats":
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS, falling back to log sink: %v", err)
			sink = &trace.LogSink{Log: sysLogger}
		} else {
			sink = trace.NewNatsSink(natsPub)
		}
	case "db":
		sink = trace.NewGormSink(db)
	default:
		sink = &trace.LogSink{Log: sysLogger}
	}
	tracer := trace.NewTracer(cfg.Trace.Enabled, sink, sysLogger)

	// 5. RAG core
	preprocessor := preprocess.NewTextPreprocessor(cfg.Ai.Language)
	renderer := prompt.NewRenderer(cfg.Ai.PromptFormat)
	historyStore := history.NewStore()

	ret := retriever.NewRetriever(
		knowledgeRepo,
		embeddingRepo,
		embeddingProvider,
		preprocessor,
		tokenizer,
		retriever.Options{
			TopK:                  cfg.Rag.TopK,
			ReturnFullTextContent: cfg.Rag.ReturnFullTextContent,
			MaxContextLength:      cfg.Rag.MaxContextLength,
		},
	)

	checker := answer.NewChecker(
		llmProvider,
		renderer,
		constant.CompareSystemPromptV1,
		constant.AffirmativeToken(cfg.Ai.Language),
	)

	streamer := stream.NewStreamer(llmProvider, historyStore)

	keywordService := service.NewKeywordService(knowledgeRepo, preprocessor)

	ragPipeline := pipeline.NewPipeline(
		historyStore,
		ret,
		checker,
		streamer,
		renderer,
		preprocessor,
		tokenizer,
		keywordService,
		tracer,
		sysLogger,
		pipeline.Options{
			SystemPrompt:         constant.RagSystemPromptV1,
			NoDataContext:        constant.NoDataContext,
			ApologyMessage:       constant.ApologyMessage,
			StopToken:            "<|im_end|>",
			MaxChatHistoryLength: cfg.Rag.MaxChatHistoryLength,
		},
	)

	// 6. Services
	chatService := service.NewChatService(ragPipeline)
	authService := service.NewAuthService(cfg.App.AuthUsername, cfg.App.AuthPasswordHash, cfg.App.JwtSecret)
	knowledgeService := service.NewKnowledgeService(knowledgeRepo, keywordService)
	publisherService := service.NewPublisherService(embedTopicName, pubSub)
	ingestService := service.NewIngestService(uowFactory, publisherService, preprocessor)
	consumerService := service.NewConsumerService(pubSub, embedTopicName, uowFactory, embeddingProvider)

	// 7. Controllers
	return &Container{
		AuthController:          controller.NewAuthController(authService),
		ChatController:          controller.NewChatController(chatService, sysLogger),
		KnowledgebaseController: controller.NewKnowledgebaseController(knowledgeService),
		ConsumerService:         consumerService,
		KeywordService:          keywordService,
		IngestService:           ingestService,
		ChatService:             chatService,
		Logger:                  sysLogger,
	}
}

// WarmUp loads startup state that needs the database: the corpus keyword
// set for the knowledge-match gate.
func (c *Container) WarmUp(ctx context.Context) error {
	return c.KeywordService.Rebuild(ctx)
}

// checkSystemPromptBudget refuses startup when a compiled-in system prompt
// exceeds the configured token ceiling. An oversized prompt would crowd the
// context window of every request, so this fails fast instead.
func checkSystemPromptBudget(tokenizer llm.Tokenizer, limit int) error {
	prompts := []struct {
		name string
		text string
	}{
		{"system prompt", constant.RagSystemPromptV1},
		{"compare prompt", constant.CompareSystemPromptV1},
	}
	for _, p := range prompts {
		if count := tokenizer.Count(p.text); count > limit {
			return fmt.Errorf("%s is %d tokens, above RAG_MAX_SYSTEM_PROMPT_LENGTH (%d)", p.name, count, limit)
		}
	}
	return nil
}
