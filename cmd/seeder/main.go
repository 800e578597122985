package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/candidly/candex"
	"github.com/candidly/candex/ai"
	"github.com/candidly/candex/core"
	"github.com/candidly/candex/ingest"
)

var (
	dataDir = flag.String("data", "./candex_db", "data directory")
	srcDir  = flag.String("src", "", "directory of resume PDFs to ingest")
	aiHost  = flag.String("host", "http://localhost:11434/v1", "AI service host")
	tikaURL = flag.String("tika", "http://localhost:9998", "Apache Tika server URL")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// collectFiles reads every PDF in dir into a batch input.
func collectFiles(dir string) ([]ingest.FileInput, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []ingest.FileInput
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, ingest.FileInput{
			Filename: entry.Name(),
			Data:     data,
		})
	}
	return files, nil
}

func main() {
	if *srcDir == "" {
		fmt.Fprintln(os.Stderr, "usage: seeder -src <dir of resume PDFs> [-data <dir>] [-host <url>] [-tika <url>]")
		os.Exit(1)
	}

	files, err := collectFiles(*srcDir)
	if err != nil {
		panic(err)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no PDF files in %s\n", *srcDir)
		os.Exit(1)
	}

	sys, err := candex.NewSystem(*dataDir,
		candex.WithAIConfig(ai.NewConfig(ai.WithHost(*aiHost))),
		candex.WithTikaURL(*tikaURL),
	)
	if err != nil {
		panic(err)
	}
	defer sys.Close()

	pipeline, err := sys.NewPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	pipeline.IngestBatch(ctx, files)

	docs, err := sys.DocumentRepository().ListDocuments(ctx)
	if err != nil {
		panic(err)
	}

	counts := make(map[core.DocumentStatus]int)
	for _, doc := range docs {
		counts[doc.Status]++
	}
	fmt.Printf("Ingested %d files, %d documents total\n", len(files), len(docs))
	for status, n := range counts {
		fmt.Printf("  %s: %d\n", status, n)
	}
}
