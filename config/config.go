package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Dosada05/cup-roster/importer"
	"github.com/Dosada05/cup-roster/models"
	"github.com/Dosada05/cup-roster/storage"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL        string
	JWTSecretKey       string
	ServerPort         int
	CORSAllowedOrigins []string

	R2 storage.CloudflareR2UploaderConfig

	ImportHeaderRow       int
	ImportStartRow        int
	ImportDefaultPosition models.Position
	ImportKeywordsFile    string
	ImportMaxUploadBytes  int64
}

// Load загружает конфигурацию из переменных окружения.
// .env подхватывается, если лежит в рабочем каталоге.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	port, err := envInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	cfg := &Config{
		DatabaseURL:        dbURL,
		JWTSecretKey:       os.Getenv("JWT_SECRET_KEY"),
		ServerPort:         port,
		CORSAllowedOrigins: splitList(envString("CORS_ALLOWED_ORIGINS", "*")),
		R2: storage.CloudflareR2UploaderConfig{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		},
		ImportDefaultPosition: models.Position(strings.ToUpper(envString("IMPORT_DEFAULT_POSITION", string(models.PositionMidfielder)))),
		ImportKeywordsFile:    os.Getenv("IMPORT_KEYWORDS_FILE"),
	}

	if r2 := cfg.R2; !r2.Configured() && (r2.AccountID != "" || r2.AccessKeyID != "" ||
		r2.SecretAccessKey != "" || r2.BucketName != "" || r2.PublicBaseURL != "") {
		return nil, errors.New("R2 storage is partially configured: set all R2_* variables or none")
	}

	if cfg.ImportHeaderRow, err = envInt("IMPORT_HEADER_ROW", importer.DefaultHeaderRow); err != nil {
		return nil, err
	}
	if cfg.ImportStartRow, err = envInt("IMPORT_START_ROW", importer.DefaultStartRow); err != nil {
		return nil, err
	}
	maxMB, err := envInt("IMPORT_MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}
	if maxMB <= 0 {
		return nil, fmt.Errorf("IMPORT_MAX_UPLOAD_MB must be positive, got %d", maxMB)
	}
	cfg.ImportMaxUploadBytes = int64(maxMB) << 20

	return cfg, nil
}

// ValidateForServer — проверки, нужные только HTTP-серверу.
func (c *Config) ValidateForServer() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}
	return nil
}

// ImportOptions собирает параметры загрузки по умолчанию и, если задан
// IMPORT_KEYWORDS_FILE, таблицу ключевых слов из него.
func (c *Config) ImportOptions() (importer.Options, error) {
	opts := importer.Options{
		HeaderRow:       c.ImportHeaderRow,
		StartRow:        c.ImportStartRow,
		DefaultPosition: c.ImportDefaultPosition,
	}
	if c.ImportKeywordsFile != "" {
		f, err := os.Open(c.ImportKeywordsFile)
		if err != nil {
			return importer.Options{}, fmt.Errorf("failed to open keywords file: %w", err)
		}
		defer f.Close()
		if opts.Keywords, err = importer.LoadKeywordTable(f); err != nil {
			return importer.Options{}, fmt.Errorf("keywords file %s: %w", c.ImportKeywordsFile, err)
		}
	}
	if err := opts.Validate(); err != nil {
		return importer.Options{}, fmt.Errorf("invalid import settings: %w", err)
	}
	return opts, nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
