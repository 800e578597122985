// Copyright 2026 Candidly Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/candidly/candex"
	"github.com/candidly/candex/core"
	"github.com/candidly/candex/ingest"
	"github.com/candidly/candex/objstore/minio"
	"github.com/candidly/candex/reindex"
	"github.com/candidly/candex/search"
)

func main() {
	app := &cli.App{
		Name:  "candex",
		Usage: "Resume intake and hybrid search engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Value:   "./candex.yaml",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Data directory (overrides config file)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest resume files",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Size of the ingestion worker pool",
						Value:   4,
					},
				},
			},
			{
				Name:   "pending",
				Usage:  "List documents awaiting the vision fallback decision",
				Action: pendingCommand,
			},
			{
				Name:   "resume",
				Usage:  "Run the vision fallback for a parked document",
				Action: resumeCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "id",
						Usage:    "Document id",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Original file (defaults to the archived copy)",
					},
				},
			},
			{
				Name:   "skip",
				Usage:  "Decline the vision fallback for a parked document",
				Action: skipCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "id",
						Usage:    "Document id",
						Required: true,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search processed resumes",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Print intermediate search steps",
					},
				},
			},
			{
				Name:   "show",
				Usage:  "Show a document and its structured profile",
				Action: showCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "id",
						Usage:    "Document id",
						Required: true,
					},
				},
			},
			{
				Name:   "delete",
				Usage:  "Delete a document, its profile and its index entry",
				Action: deleteCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "id",
						Usage:    "Document id",
						Required: true,
					},
				},
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the vector index from stored profiles",
				Action: reindexCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pending-only",
						Usage: "Only index documents whose embedding never landed",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to embed in each batch",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: 100,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openSystem builds a System from the config file and global flags.
func openSystem(c *cli.Context) (*candex.System, error) {
	cfg, err := loadAppConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dir := c.String("data-dir"); dir != "" {
		cfg.DataDir = dir
	}

	aiConfig := cfg.aiConfig()
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []candex.SystemOption{
		candex.WithAIConfig(aiConfig),
		candex.WithTikaURL(cfg.TikaURL),
	}
	if cfg.Minio != nil {
		store, err := minio.NewStore(context.Background(), minio.Config{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to object storage: %w", err)
		}
		opts = append(opts, candex.WithObjectStore(store))
	}

	return candex.NewSystem(cfg.DataDir, opts...)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	pipeline, err := sys.NewPipeline(ingest.WithPoolSize(c.Int("workers")))
	if err != nil {
		return err
	}
	defer pipeline.Release()

	ctx := context.Background()
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		doc, err := pipeline.IngestFile(ctx, filepath.Base(path), data)
		switch {
		case errors.Is(err, core.ErrDuplicateDocument):
			fmt.Printf("%s: duplicate of document %d\n", path, doc.Id)
		case err != nil:
			fmt.Printf("%s: failed: %v\n", path, err)
		case doc.Status == core.StatusAwaitingVisionDecision:
			fmt.Printf("%s: document %d parked, run 'candex resume --id %d' to use the vision fallback\n",
				path, doc.Id, doc.Id)
		default:
			fmt.Printf("%s: document %d %s (%d chars)\n", path, doc.Id, doc.Status, doc.CharCount)
		}
	}

	return nil
}

func pendingCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	pipeline, err := sys.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	docs, err := pipeline.PendingVision(context.Background())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("No documents awaiting a vision decision")
		return nil
	}
	for _, doc := range docs {
		fmt.Printf("%d: %s (%d chars from standard extraction)\n", doc.Id, doc.Filename, doc.CharCount)
	}
	return nil
}

func resumeCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	pipeline, err := sys.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	var data []byte
	if path := c.String("file"); path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	doc, err := pipeline.ResumeVision(context.Background(), core.ID(c.Uint64("id")), data)
	if err != nil {
		return err
	}
	fmt.Printf("document %d %s (%d chars)\n", doc.Id, doc.Status, doc.CharCount)
	return nil
}

func skipCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	pipeline, err := sys.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	doc, err := pipeline.SkipVision(context.Background(), core.ID(c.Uint64("id")))
	if err != nil {
		return err
	}
	fmt.Printf("document %d %s\n", doc.Id, doc.Status)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	engine, err := sys.NewSearchEngine()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var results []*core.SearchResult
	if c.Bool("verbose") {
		results, err = engine.SearchWithMonitor(ctx, query, c.Int("limit"), &stderrMonitor{})
	} else {
		results, err = engine.Search(ctx, query, c.Int("limit"))
	}
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		name := hit.Filename
		if hit.Profile != nil && hit.Profile.FullName != "" {
			name = hit.Profile.FullName
		}
		fmt.Printf("%d: %s (%d) score=%.1f sem=%.1f exact=%.1f\n",
			i+1, name, hit.DocumentId, hit.Score, hit.SemanticScore, hit.ExactScore)
		if len(hit.FoundKeywords) > 0 {
			fmt.Printf("   matched: %s\n", strings.Join(hit.FoundKeywords, ", "))
		}
		if len(hit.MissingKeywords) > 0 {
			fmt.Printf("   missing: %s\n", strings.Join(hit.MissingKeywords, ", "))
		}
	}
	return nil
}

func showCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	ctx := context.Background()
	id := core.ID(c.Uint64("id"))

	doc, err := sys.DocumentRepository().GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %d not found", id)
	}

	fmt.Printf("Document %d: %s\n", doc.Id, doc.Filename)
	fmt.Printf("  Status:      %s\n", doc.Status)
	if doc.FailureReason != "" {
		fmt.Printf("  Failure:     %s\n", doc.FailureReason)
	}
	fmt.Printf("  Chars:       %d\n", doc.CharCount)
	fmt.Printf("  Vision used: %v\n", doc.VisionUsed)
	if doc.StoragePath != "" {
		fmt.Printf("  Archived at: %s\n", doc.StoragePath)
	}
	fmt.Printf("  Ingested:    %s\n", doc.InsertedAt.Format("2006-01-02 15:04:05"))

	profile, err := sys.ProfileRepository().GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Println("  No structured profile")
		return nil
	}

	fmt.Printf("Profile: %s\n", profile.FullName)
	if profile.CurrentTitle != "" {
		fmt.Printf("  Title:         %s\n", profile.CurrentTitle)
	}
	if profile.PrimarySkill != "" {
		fmt.Printf("  Primary skill: %s\n", profile.PrimarySkill)
	}
	if len(profile.KeySkills) > 0 {
		fmt.Printf("  Key skills:    %s\n", strings.Join(profile.KeySkills, ", "))
	}
	if profile.Summary != "" {
		fmt.Printf("  Summary:       %s\n", profile.Summary)
	}
	return nil
}

func deleteCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	pipeline, err := sys.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	id := core.ID(c.Uint64("id"))
	if err := pipeline.Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("document %d deleted\n", id)
	return nil
}

func reindexCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	reindexer := sys.NewReindexer()
	if batch := c.Int("batch-size"); batch > 0 {
		reindexer.BatchSize = batch
	}

	tracker := reindex.NewProgressTracker(os.Stderr, 0, c.Int("report-interval"))
	count, err := reindexer.Run(context.Background(), c.Bool("pending-only"), tracker)
	if err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Reindexed %d documents\n", count)
	return nil
}

// stderrMonitor prints each search stage for the --verbose flag.
type stderrMonitor struct{}

var _ search.Monitor = (*stderrMonitor)(nil)

func (m *stderrMonitor) Start(query string) {
	fmt.Fprintf(os.Stderr, "query: %s\n", query)
}

func (m *stderrMonitor) AfterKeywordExtraction(keywords []string) {
	fmt.Fprintf(os.Stderr, "critical keywords: %s\n", strings.Join(keywords, ", "))
}

func (m *stderrMonitor) AfterQueryExpansion(expanded string) {
	fmt.Fprintf(os.Stderr, "expanded query: %s\n", expanded)
}

func (m *stderrMonitor) AfterSemanticSearch(matches []core.VectorMatch) {
	fmt.Fprintf(os.Stderr, "semantic candidates: %d\n", len(matches))
}

func (m *stderrMonitor) MissingProfile(id core.ID) {
	fmt.Fprintf(os.Stderr, "skipping document %d: no profile\n", id)
}

func (m *stderrMonitor) Finish(results []*core.SearchResult) {
	fmt.Fprintf(os.Stderr, "results: %d\n", len(results))
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
