// Copyright 2026 Poiesic Systems
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
	"bufio"
	"context"
	"fmt"
	stdlog "log"
	"log/slog"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/poiesic/lifepilot/agent"
	"github.com/poiesic/lifepilot/ai"
	"github.com/poiesic/lifepilot/ai/openai"
	"github.com/poiesic/lifepilot/calendar"
	"github.com/poiesic/lifepilot/export"
	"github.com/poiesic/lifepilot/ingest"
	"github.com/poiesic/lifepilot/storage"
	"github.com/poiesic/lifepilot/storage/badger"
	"github.com/poiesic/lifepilot/storage/hosted"
	"github.com/urfave/cli/v2"
)

const defaultStorePath = "data/lifepilot.db"

func main() {
	app := &cli.App{
		Name:  "lifepilot",
		Usage: "Personal assistant with persistent contextual memory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest connector export files into memory",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: append(storageFlags(),
					&cli.StringFlag{
						Name:     "connector",
						Aliases:  []string{"c"},
						Usage:    "Source connector (calendar, vision, audio)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "user",
						Usage: "Override the user id for all records",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Fact extraction model",
						Value: "grok-4-1-fast-reasoning",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-call AI timeout",
						Value: 60 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Report would-be memories without storing them",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Max records per file (0 = unbounded)",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Log per-record progress",
					},
					&cli.BoolFlag{
						Name:  "no-enrich",
						Usage: "Store raw record text instead of AI-extracted facts",
					},
					aiHostFlag(), aiKeyFlag(),
				),
			},
			{
				Name:   "chat",
				Usage:  "Talk to the assistant",
				Action: chatCommand,
				Flags: append(storageFlags(),
					&cli.StringFlag{
						Name:  "user",
						Usage: "User id",
						Value: "demo_user",
					},
					&cli.StringFlag{
						Name:  "chat-model",
						Usage: "Conversational model",
						Value: "grok-4-1-fast",
					},
					&cli.StringFlag{
						Name:  "calendar-secrets",
						Usage: "Directory with the Google Calendar token (empty disables event creation)",
					},
					aiHostFlag(), aiKeyFlag(),
				),
			},
			{
				Name:   "export",
				Usage:  "Export memories as one JSON file per user",
				Action: exportCommand,
				Flags: append(storageFlags(),
					&cli.StringSliceFlag{
						Name:     "users",
						Usage:    "User ids to export",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output directory",
						Value: "exports",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Concurrent export workers (0 = auto)",
					},
				),
			},
			{
				Name:   "archive",
				Usage:  "Zip the local store directory for backup",
				Action: archiveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the local store directory",
						Value:   defaultStorePath,
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output directory",
						Value: "backups",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		stdlog.Fatal(err)
	}
}

func storageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to the local BadgerDB store",
			Value:   defaultStorePath,
		},
		&cli.StringFlag{
			Name:    "memory-api-url",
			Usage:   "Hosted memory service URL (overrides the local store)",
			EnvVars: []string{"MEMORY_API_URL"},
		},
		&cli.StringFlag{
			Name:    "memory-api-key",
			Usage:   "Hosted memory service API key",
			EnvVars: []string{"MEMORY_API_KEY"},
		},
	}
}

func aiHostFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "ai-host",
		Usage:   "Chat API base URL",
		Value:   "https://api.x.ai/v1",
		EnvVars: []string{"XAI_API_HOST"},
	}
}

func aiKeyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "api-key",
		Usage:   "Chat API key",
		EnvVars: []string{"XAI_API_KEY"},
	}
}

// openRepository picks the hosted memory service when configured, the local
// BadgerDB store otherwise.
func openRepository(c *cli.Context) (storage.MemoryRepository, error) {
	if url := c.String("memory-api-url"); url != "" {
		return hosted.NewClient(&hosted.Config{
			BaseURL: url,
			APIKey:  c.String("memory-api-key"),
		})
	}
	return badger.NewRepository(c.String("db"))
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	connector, err := ingest.ParseConnector(c.String("connector"))
	if err != nil {
		return err
	}

	cfg := ingest.DefaultConfig()
	cfg.Model = c.String("model")
	cfg.Timeout = c.Duration("timeout")
	cfg.DryRun = c.Bool("dry-run")
	cfg.Limit = c.Int("limit")
	cfg.UserID = c.String("user")
	cfg.Verbose = c.Bool("verbose")
	cfg.Enrich = !c.Bool("no-enrich")

	repository, err := openRepository(c)
	if err != nil {
		return fmt.Errorf("opening memory store: %w", err)
	}
	defer repository.Close()

	var extractor ai.FactExtractor
	if cfg.Enrich {
		aiConfig := ai.NewConfig(
			ai.WithHost(c.String("ai-host")),
			ai.WithAPIKey(c.String("api-key")),
			ai.WithExtractorModel(cfg.Model),
			ai.WithTimeout(cfg.Timeout),
		)
		extractor, err = openai.NewFactExtractor(aiConfig)
		if err != nil {
			return fmt.Errorf("creating fact extractor: %w", err)
		}
	}

	pipeline, err := ingest.NewPipeline(repository, extractor, cfg)
	if err != nil {
		return err
	}

	processed, stored, err := pipeline.IngestPaths(context.Background(), connector, c.Args().Slice())
	fmt.Printf("Processed %d record(s), stored %d memory(ies)\n", processed, stored)
	return err
}

func chatCommand(c *cli.Context) error {
	repository, err := openRepository(c)
	if err != nil {
		return fmt.Errorf("opening memory store: %w", err)
	}
	defer repository.Close()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithChatModel(c.String("chat-model")),
	)
	model, err := openai.NewChatModel(aiConfig)
	if err != nil {
		return fmt.Errorf("creating chat model: %w", err)
	}

	var events agent.EventCreator
	if secretsDir := c.String("calendar-secrets"); secretsDir != "" {
		client, err := calendar.NewClient(&calendar.Config{SecretsDir: secretsDir})
		if err != nil {
			slog.Warn("calendar unavailable, continuing without event creation", "err", err)
		} else {
			events = client
		}
	}

	userID := c.String("user")
	assistant, err := agent.New(model, agent.NewToolset(userID, repository, events))
	if err != nil {
		return err
	}

	fmt.Printf("Chatting as %s. Type 'exit' to quit.\n", userID)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		reply, err := assistant.Chat(context.Background(), line, "user_message")
		if err != nil {
			slog.Error("chat turn failed", "err", err)
			continue
		}
		fmt.Println(reply)
	}
	return scanner.Err()
}

func exportCommand(c *cli.Context) error {
	repository, err := openRepository(c)
	if err != nil {
		return fmt.Errorf("opening memory store: %w", err)
	}
	defer repository.Close()

	paths, err := export.ExportUsers(
		context.Background(),
		repository,
		c.StringSlice("users"),
		c.String("out"),
		c.Int("pool-size"),
	)
	for _, path := range paths {
		fmt.Println(path)
	}
	return err
}

func archiveCommand(c *cli.Context) error {
	archivePath, err := export.ArchiveStore(c.String("db"), c.String("out"))
	if err != nil {
		return err
	}
	fmt.Println(archivePath)
	return nil
}

// setup loads .env (when present) and configures logging before any command
// runs.
func setup(c *cli.Context) error {
	// Missing .env is fine; explicit configuration still comes from flags
	// and the process environment.
	_ = godotenv.Load()

	level, err := charmlog.ParseLevel(strings.ToLower(c.String("log-level")))
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.String("log-level"))
	}

	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	slog.SetDefault(slog.New(handler))
	return nil
}
