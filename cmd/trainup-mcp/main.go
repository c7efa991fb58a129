// trainup-mcp serves TrainUp training data over MCP on stdio.
//
// Remote mode (default) talks to a TrainUp server with the sign-in stored
// by the CLI (run "trainup login" first):
//
//	trainup-mcp -server https://trainup.tail1234.ts.net
//
// Local mode reads the database directly, bound to one account:
//
//	trainup-mcp -config config.yaml -phone 11988887777
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/trainup/internal/auth"
	"github.com/claude/trainup/internal/client"
	"github.com/claude/trainup/internal/config"
	"github.com/claude/trainup/internal/mcp"
	"github.com/claude/trainup/internal/models"
	"github.com/claude/trainup/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", os.Getenv("TRAINUP_SERVER"), "TrainUp server URL (remote mode)")
	stateDir := flag.String("state-dir", "", "directory with the CLI's stored sign-in (default ~/.trainup)")
	configPath := flag.String("config", "", "path to server config file (local mode)")
	phone := flag.String("phone", "", "account phone number (local mode)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("trainup-mcp", Version)
		return
	}

	// Logs go to stderr; stdout carries the MCP stream.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ds, cleanup, err := newDataSource(*serverURL, *stateDir, *configPath, *phone, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	s := mcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

func newDataSource(serverURL, stateDir, configPath, phone string, log *slog.Logger) (mcp.DataSource, func(), error) {
	ctx := context.Background()

	if configPath != "" {
		if phone == "" {
			return nil, nil, fmt.Errorf("-config requires -phone to pick the account")
		}
		normalized := models.NormalizePhone(phone)

		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		db, err := storage.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connecting database: %w", err)
		}
		user, err := db.GetUserByPhone(ctx, normalized)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("looking up account %s: %w", models.MaskPhone(normalized), err)
		}
		log.Info("local mode", "user", user.FirstName, "phone", models.MaskPhone(normalized))
		return mcp.NewLocalSource(db, user.ID), db.Close, nil
	}

	if serverURL == "" {
		return nil, nil, fmt.Errorf("no server URL. Use -server, set TRAINUP_SERVER, or run in local mode with -config")
	}

	dir := stateDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".trainup")
	}
	state, err := auth.OpenStateDB(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening state database: %w", err)
	}

	api := client.New(serverURL)
	session := auth.NewSession(api, state)
	ok, err := session.Resume(ctx)
	if err != nil {
		session.Close()
		return nil, nil, fmt.Errorf("resuming session: %w", err)
	}
	if !ok {
		session.Close()
		return nil, nil, fmt.Errorf("not signed in. Run \"trainup login <phone>\" first")
	}
	log.Info("remote mode", "server", serverURL, "user", session.User().FirstName)
	return mcp.NewRemoteSource(api, session.Token()), func() { session.Close() }, nil
}
