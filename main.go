package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"

	"github.com/shopmindai/shopmind/appconfig"
	"github.com/shopmindai/shopmind/ingest"
	"github.com/shopmindai/shopmind/llm"
	"github.com/shopmindai/shopmind/ragagent"
	"github.com/shopmindai/shopmind/search"
	"github.com/shopmindai/shopmind/sqlagent"
	"github.com/shopmindai/shopmind/store"
	"github.com/shopmindai/shopmind/summarize"
	"github.com/shopmindai/shopmind/workers"
)

const usage = `usage:
  shopmind sql "question"        answer a question over the business database
  shopmind ask "question"        answer a question over ingested documents
  shopmind ingest <file>         index a document into the vector store
  shopmind summarize <file>      summarize a document
  shopmind worker                run the ingestion worker
  shopmind cleanup               delete chunks ingested from temporary uploads`

func main() {
	dotenv.LoadEnv()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	ccfg := &appconfig.AppConfig{}
	if err := config.LoadConfig("config.ini", ccfg); err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := getCancellableContext()

	switch os.Args[1] {
	case "sql":
		runSQL(ctx, ccfg, argOrExit())
	case "ask":
		runAsk(ctx, ccfg, argOrExit())
	case "ingest":
		runIngest(ctx, ccfg, argOrExit())
	case "summarize":
		runSummarize(ctx, ccfg, argOrExit())
	case "worker":
		runWorker(ctx, ccfg)
	case "cleanup":
		runCleanup(ctx, ccfg)
	default:
		fmt.Println(usage)
		os.Exit(2)
	}
}

func runSQL(ctx context.Context, ccfg *appconfig.AppConfig, question string) {
	pool, err := store.NewPool(ctx, ccfg.PgURI)
	if err != nil {
		logger.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pool.Close()

	agent := sqlagent.New(sqlagent.Config{
		LLM:         newLLMClient(ccfg),
		Runner:      store.NewPgRunner(pool),
		Schema:      store.Schema(),
		MaxAttempts: ccfg.MaxSQLAttempts,
	})

	result := agent.Run(ctx, question)
	fmt.Println(result.QueryResult)
}

func runAsk(ctx context.Context, ccfg *appconfig.AppConfig, question string) {
	pool, err := store.NewPool(ctx, ccfg.PgURI)
	if err != nil {
		logger.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pool.Close()

	ollamaClient, err := api.ClientFromEnvironment()
	if err != nil {
		logger.Fatal("Failed to create Ollama client", zap.Error(err))
	}

	agent := ragagent.New(ragagent.Config{
		LLM:       newLLMClient(ccfg),
		Retriever: store.NewVectorStore(pool, llm.NewOllamaEmbedder(ollamaClient, ccfg.EmbeddingModel)),
		Web:       search.NewTavilyClient(ccfg.WebMaxResults),
		TopK:      ccfg.RetrievalTopK,
	})

	result := agent.Run(ctx, question)
	if len(result.Messages) > 0 {
		fmt.Println(result.Messages[len(result.Messages)-1].Content)
	}
	for _, src := range result.RagCitations {
		fmt.Println("  source:", src)
	}
	for _, url := range result.WebCitations {
		fmt.Println("  web:", url)
	}
}

func runIngest(ctx context.Context, ccfg *appconfig.AppConfig, filePath string) {
	runner, err := workers.NewRunner(ccfg.TemporalHostPort, ccfg.TemporalTaskQueue, nil)
	if err != nil {
		logger.Fatal("Failed to connect to temporal", zap.Error(err))
	}
	defer runner.Close()

	state, err := runner.IndexFile(ctx, filePath)
	if err != nil {
		logger.Fatal("Indexing failed", zap.Error(err))
	}
	fmt.Printf("indexed %s: %d chunks stored\n", filePath, state.Inserted)
}

func runSummarize(ctx context.Context, ccfg *appconfig.AppConfig, filePath string) {
	runner, err := workers.NewRunner(ccfg.TemporalHostPort, ccfg.TemporalTaskQueue, nil)
	if err != nil {
		logger.Fatal("Failed to connect to temporal", zap.Error(err))
	}
	defer runner.Close()

	state, err := runner.SummarizeFile(ctx, filePath)
	if err != nil {
		logger.Fatal("Summarization failed", zap.Error(err))
	}
	fmt.Println(state.Summary)
}

func runCleanup(ctx context.Context, ccfg *appconfig.AppConfig) {
	pool, err := store.NewPool(ctx, ccfg.PgURI)
	if err != nil {
		logger.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pool.Close()

	// cleanup never embeds, so no embedder is wired
	deleted, err := store.NewVectorStore(pool, nil).DeleteTempDocuments(ctx)
	if err != nil {
		logger.Fatal("Cleanup failed", zap.Error(err))
	}
	fmt.Printf("deleted %d temporary document chunks\n", deleted)
}

func runWorker(ctx context.Context, ccfg *appconfig.AppConfig) {
	pool, err := store.NewPool(ctx, ccfg.PgURI)
	if err != nil {
		logger.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pool.Close()

	ollamaClient, err := api.ClientFromEnvironment()
	if err != nil {
		logger.Fatal("Failed to create Ollama client", zap.Error(err))
	}

	claude := llm.NewAnthropicClient(ccfg.AnthropicModel)

	vector := store.NewVectorStore(pool, llm.NewOllamaEmbedder(ollamaClient, ccfg.EmbeddingModel))
	if err := vector.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to ensure vector schema", zap.Error(err))
	}

	chunker := ingest.ProvideChunker()
	if chunker == nil {
		logger.Fatal("Failed to initialize chunker")
	}

	summarizer := summarize.New(summarize.Config{LLM: newLLMClient(ccfg)})
	if summarizer == nil {
		logger.Fatal("Failed to initialize summarizer")
	}

	extractor := ingest.NewFileExtractor(
		ingest.NewDoclingClient(ccfg.DoclingURL),
		ingest.NewVisionExtractor(claude),
	)

	activities := workers.ProvideActivities(extractor, chunker, vector, summarizer)

	runner, err := workers.NewRunner(ccfg.TemporalHostPort, ccfg.TemporalTaskQueue, activities)
	if err != nil {
		logger.Fatal("Failed to connect to temporal", zap.Error(err))
	}
	defer runner.Close()

	if err := runner.Start(ctx); err != nil {
		logger.Fatal("Worker stopped", zap.Error(err))
	}
}

// newLLMClient builds the chat backend named by llm_provider. Vision
// extraction always goes through Anthropic regardless of this setting.
func newLLMClient(ccfg *appconfig.AppConfig) llm.LLMClient {
	switch ccfg.LLMProvider {
	case "ollama":
		client, err := llm.NewOllamaClient(ccfg.OllamaModel)
		if err != nil {
			logger.Fatal("Failed to create Ollama client", zap.Error(err))
		}
		return client
	case "", "anthropic":
		return llm.NewAnthropicClient(ccfg.AnthropicModel)
	default:
		logger.Fatal("Unknown llm_provider", zap.String("provider", ccfg.LLMProvider))
		return nil
	}
}

func argOrExit() string {
	if len(os.Args) < 3 {
		fmt.Println(usage)
		os.Exit(2)
	}
	return os.Args[2]
}

func getCancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}
