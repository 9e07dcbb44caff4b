// Command import loads a JSON array of recipe documents into the document
// store in a single transaction.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mealmind/internal/platform/docstore"
	"mealmind/internal/platform/logger"
	"mealmind/internal/recipe"
)

func main() {
	if err := loadDotenv(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	file := flag.String("file", "Recipes.json", "JSON file holding a top-level array of documents")
	collection := flag.String("collection", recipe.Collection, "target collection")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres connection string")
	flag.Parse()

	log, err := logger.New("info", logger.FormatConsole)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(*file, *collection, *dsn, log); err != nil {
		log.Error("import failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

// loadDotenv reads .env, or the given files, into the environment. Missing
// files are fine.
func loadDotenv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func run(file, collection, dsn string, log *zap.Logger) error {
	if dsn == "" {
		return fmt.Errorf("no database: set DATABASE_URL or -dsn")
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	docs, err := readDocuments(f)
	if err != nil {
		return err
	}

	store, err := docstore.NewPostgresStore(dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	log.Info("starting import", zap.Int("documents", len(docs)), zap.String("collection", collection))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ids, err := store.InsertBatch(ctx, collection, docs)
	if err != nil {
		return err
	}

	log.Info("import complete", zap.Int("documents", len(ids)), zap.String("collection", collection))
	return nil
}
