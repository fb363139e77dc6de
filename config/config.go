package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string              `mapstructure:"port"`
	AIProvider          string              `mapstructure:"ai_provider"`
	AIEndpoint          string              `mapstructure:"ai_endpoint"`
	Model               string              `mapstructure:"model"`
	EmbeddingModel      string              `mapstructure:"embedding_model"`
	OpenAIAPIKey        string              `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey        string              `mapstructure:"GEMINI_API_KEY"`
	BotUserID           string              `mapstructure:"bot_user_id"`
	DataDir             string              `mapstructure:"data_dir"`
	ChunkSize           int                 `mapstructure:"chunk_size"`
	ChunkOverlap        int                 `mapstructure:"chunk_overlap"`
	RetrievalLimit      int                 `mapstructure:"retrieval_limit"`
	Monday              MondayConfig        `mapstructure:"monday"`
	WeaviateStoreConfig WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
}

type MondayConfig struct {
	APIKey    string `mapstructure:"MONDAY_API_KEY"`
	APIURL    string `mapstructure:"api_url"`
	BoardID   string `mapstructure:"board_id"`
	Timeout   int    `mapstructure:"timeout"`
	ItemLimit int    `mapstructure:"item_limit"`
}

type WeaviateStoreConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"WEAVIATE_APIKEY"` // Changed to match env var
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("ai_provider", "gemini")
	v.SetDefault("model", "gemini-2.0-flash")
	v.SetDefault("embedding_model", "text-embedding-004")
	v.SetDefault("data_dir", "data")
	v.SetDefault("chunk_size", 1000)
	v.SetDefault("chunk_overlap", 200)
	v.SetDefault("retrieval_limit", 5)
	v.SetDefault("monday.api_url", "https://api.monday.com/v2")
	v.SetDefault("monday.board_id", "5085798849")
	v.SetDefault("monday.timeout", 30)
	v.SetDefault("monday.item_limit", 500)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("monday.MONDAY_API_KEY", "MONDAY_API_KEY")
	v.BindEnv("weaviate_store_config.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// Validate checks the credentials that are required for the process to start
// at all. The Monday key is deliberately not required: CRM features degrade
// to a "not configured" reply when it is absent.
func (c *Config) Validate() error {
	switch c.AIProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when ai_provider is openai")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when ai_provider is gemini")
		}
	default:
		return fmt.Errorf("unknown ai_provider: %s", c.AIProvider)
	}
	if c.WeaviateStoreConfig.Host == "" {
		return fmt.Errorf("weaviate_store_config.host is required")
	}
	return nil
}
