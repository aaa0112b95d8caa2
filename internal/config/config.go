package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all runtime settings for the scouting service.
type Config struct {
	Port          string   `toml:"port"`
	GridAPIKey    string   `toml:"grid_api_key"`
	ChatProvider  string   `toml:"chat_provider"`
	OpenAIKey     string   `toml:"openai_api_key"`
	OpenAIModel   string   `toml:"openai_model"`
	GeminiKey     string   `toml:"gemini_api_key"`
	GeminiModel   string   `toml:"gemini_model"`
	CORSOrigins   []string `toml:"cors_origins"`
	ChampionsFile string   `toml:"champions_file"`
}

// Load builds config from an optional TOML file plus environment variables,
// with the environment taking precedence. A .env file is loaded first if one
// can be found near the working directory.
func Load(tomlPath string) (Config, error) {
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			fmt.Printf("Loaded .env from: %s\n", path)
			break
		}
	}

	cfg := Config{
		Port:        "8080",
		CORSOrigins: []string{"*"},
	}

	if tomlPath == "" {
		tomlPath = os.Getenv("SCOUT_CONFIG")
	}
	if tomlPath != "" {
		data, err := os.ReadFile(tomlPath)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", tomlPath, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", tomlPath, err)
		}
	}

	overrideEnv(&cfg.Port, "PORT")
	overrideEnv(&cfg.GridAPIKey, "GRID_API_KEY")
	overrideEnv(&cfg.ChatProvider, "CHAT_PROVIDER")
	overrideEnv(&cfg.OpenAIKey, "OPENAI_API_KEY")
	overrideEnv(&cfg.OpenAIModel, "OPENAI_MODEL")
	overrideEnv(&cfg.GeminiKey, "GEMINI_API_KEY")
	overrideEnv(&cfg.GeminiModel, "GEMINI_MODEL")
	overrideEnv(&cfg.ChampionsFile, "CHAMPIONS_FILE")

	return cfg, nil
}

func overrideEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
