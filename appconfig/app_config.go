package appconfig

import (
	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	PgURI             string `env:"PG-URI" ini:"pg_uri"`
	TemporalHostPort  string `env:"TEMPORAL-HOST-PORT" ini:"temporal_host_port"`
	TemporalTaskQueue string `ini:"temporal_task_queue"`
	DoclingURL        string `env:"DOCLING-URL" ini:"docling_url"`

	// LLMProvider selects the chat model backend: "anthropic" or "ollama".
	LLMProvider    string `ini:"llm_provider"`
	AnthropicModel string `ini:"anthropic_model"`
	OllamaModel    string `ini:"ollama_model"`
	EmbeddingModel string `ini:"embedding_model"`

	RetrievalTopK  int `ini:"retrieval_top_k"`
	WebMaxResults  int `ini:"web_max_results"`
	MaxSQLAttempts int `ini:"max_sql_attempts"`
}
