package main

import (
	"context"
	"crypto/md5"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"career-qa/internal/models"
	"career-qa/internal/repository"
	"career-qa/pkg/config"
	"career-qa/pkg/logger"
	"career-qa/pkg/postgres"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	force := flag.Bool("force", false, "reseed even when the knowledge file is unchanged")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)
	if err := knowledgeRepo.EnsureSchema(ctx); err != nil {
		appLogger.Fatal("Failed to prepare schema", zap.Error(err))
	}

	appLogger.Info("Starting knowledge base seeding...")

	cacheFile := filepath.Join("cmd", "seed", ".seed_cache.yaml")
	source := repository.NewKnowledgeFile(cfg.Knowledge.FilePath, appLogger)
	if err := seedKnowledgeBase(ctx, source, cacheFile, *force, knowledgeRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed knowledge base", zap.Error(err))
	}

	appLogger.Info("Knowledge base seeding completed successfully!")
}

// SeededFile records the knowledge file that was last written to the database.
type SeededFile struct {
	FilePath string    `yaml:"file_path"`
	FileHash string    `yaml:"file_hash"`
	Entries  int       `yaml:"entries"`
	SeededAt time.Time `yaml:"seeded_at"`
}

// CacheData stores information about seeded files.
type CacheData struct {
	SeededFiles map[string]SeededFile `yaml:"seeded_files"` // key: file path
}

func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		SeededFiles: make(map[string]SeededFile),
	}

	data, err := os.ReadFile(cacheFile)
	if os.IsNotExist(err) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}

	if err := yaml.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.SeededFiles == nil {
		cache.SeededFiles = make(map[string]SeededFile)
	}
	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := yaml.Marshal(cache)
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cacheFile), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cacheFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// calculateFileHash calculates MD5 hash of a file
func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// seedKnowledgeBase replaces the database contents with the knowledge file,
// unless the file hash matches the last seeded one.
func seedKnowledgeBase(
	ctx context.Context,
	source *repository.KnowledgeFile,
	cacheFile string,
	force bool,
	knowledgeRepo *repository.KnowledgeRepository,
	appLogger *zap.Logger,
) error {
	cache, err := loadCache(cacheFile)
	if err != nil {
		appLogger.Warn("Failed to load seed cache, starting fresh", zap.Error(err))
		cache = &CacheData{SeededFiles: make(map[string]SeededFile)}
	}

	fileHash, err := calculateFileHash(source.Path())
	if err != nil {
		return err
	}

	if cached, ok := cache.SeededFiles[source.Path()]; ok && cached.FileHash == fileHash && !force {
		appLogger.Info("Knowledge file unchanged, skipping",
			zap.String("file", source.Path()),
			zap.Time("seeded_at", cached.SeededAt),
		)
		return nil
	}

	entries, err := source.LoadEntries(ctx)
	if err != nil {
		return err
	}

	// Same filtering as the service applies at startup.
	kb := models.NewKnowledgeBase(entries)
	kept := make([]models.KnowledgeEntry, 0, kb.Len())
	kb.Each(func(_ int, e models.KnowledgeEntry) {
		kept = append(kept, e)
	})
	if skipped := len(entries) - len(kept); skipped > 0 {
		appLogger.Warn("Skipping entries without question or answer", zap.Int("count", skipped))
	}

	if err := knowledgeRepo.ReplaceAll(ctx, kept); err != nil {
		return err
	}

	cache.SeededFiles[source.Path()] = SeededFile{
		FilePath: source.Path(),
		FileHash: fileHash,
		Entries:  len(kept),
		SeededAt: time.Now(),
	}
	if err := saveCache(cacheFile, cache); err != nil {
		appLogger.Warn("Failed to save seed cache", zap.Error(err))
	}

	appLogger.Info("Knowledge base seeded",
		zap.String("file", source.Path()),
		zap.Int("entries", len(kept)),
	)
	return nil
}
