package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Perth00/wanderplan-sync/internal/account"
	"github.com/Perth00/wanderplan-sync/internal/asset"
	"github.com/Perth00/wanderplan-sync/internal/blob"
	"github.com/Perth00/wanderplan-sync/internal/cloud"
	"github.com/Perth00/wanderplan-sync/internal/config"
	"github.com/Perth00/wanderplan-sync/internal/logging"
	"github.com/Perth00/wanderplan-sync/internal/state"
	"github.com/Perth00/wanderplan-sync/internal/store"
	"github.com/Perth00/wanderplan-sync/internal/syncer"
)

var Version = "dev"

const usage = `usage: wanderplan-sync <command>

commands:
  push       upload local trips, activities and budget entries
             --if-needed  skip unless an automatic sync is due
  restore    replace local data with the account's cloud trips
  status     show the persisted sync state
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment)

	tracker, err := state.LoadAt(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("loading sync state: %w", err)
	}
	defer tracker.Close()

	if err := seedPreferences(tracker, cfg); err != nil {
		logger.Warn("seeding sync preferences failed", slog.Any("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case "push":
		return runPush(ctx, cfg, tracker, logger, args)
	case "restore":
		return runRestore(ctx, cfg, tracker, logger)
	case "status":
		return runStatus(tracker)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// seedPreferences copies the configured automatic-sync flags into the
// tracker on first run. After that the tracker's persisted values win,
// so a toggle survives restarts regardless of the environment.
func seedPreferences(tracker *state.Tracker, cfg *config.Config) error {
	st, err := tracker.Get()
	if err != nil {
		return err
	}

	if st.Status != state.StatusNever {
		return nil
	}

	if err := tracker.SetAutoSync(cfg.AutoSync); err != nil {
		return err
	}

	return tracker.SetSyncOnLogin(cfg.SyncOnLogin)
}

// identity resolves the account to sync: explicit environment identity
// first, then the session cached from a previous run.
func identity(cfg *config.Config, tracker *state.Tracker, logger *slog.Logger) (account.Provider, error) {
	if cfg.AccountID != "" || cfg.AccountEmail != "" {
		if err := tracker.SetSession(state.Session{
			UserID: cfg.AccountID,
			Email:  cfg.AccountEmail,
			Token:  cfg.AuthToken,
		}); err != nil {
			logger.Warn("caching session failed", slog.Any("error", err))
		}

		return account.Static{ID: cfg.AccountID, EmailAddress: cfg.AccountEmail}, nil
	}

	session, err := tracker.Session()
	if err != nil {
		return nil, fmt.Errorf("reading cached session: %w", err)
	}

	if session == nil {
		return account.Static{}, nil
	}

	logger.Debug("using cached session", slog.String("email", session.Email))

	return account.Static{ID: session.UserID, EmailAddress: session.Email}, nil
}

func buildSyncer(cfg *config.Config, tracker *state.Tracker, logger *slog.Logger) (*syncer.Syncer, *store.Store, error) {
	provider, err := identity(cfg, tracker, logger)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening local database: %w", err)
	}

	docs := cloud.NewClient(cfg.CloudBaseURL, cfg.AuthToken, nil)
	blobs := blob.NewClient(cfg.BlobBaseURL, cfg.AuthToken, nil)
	migrator := asset.New(blobs, nil, logger)

	return syncer.New(st, docs, migrator, tracker, provider, logger), st, nil
}

func printProgress(percent int, message string) {
	fmt.Printf("[%3d%%] %s\n", percent, message)
}

func runPush(ctx context.Context, cfg *config.Config, tracker *state.Tracker, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("push", flag.ContinueOnError)
	ifNeeded := fs.Bool("if-needed", false, "skip unless an automatic sync is due")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *ifNeeded {
		needed, err := tracker.IsSyncNeeded(time.Now())
		if err != nil {
			return fmt.Errorf("checking sync state: %w", err)
		}

		if !needed {
			logger.Info("sync not needed, skipping")
			return nil
		}
	}

	s, st, err := buildSyncer(cfg, tracker, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := s.Push(ctx, printProgress)
	if err != nil {
		return err
	}

	fmt.Printf("synced %d trips and %d activities\n", result.Trips, result.Activities)

	return nil
}

func runRestore(ctx context.Context, cfg *config.Config, tracker *state.Tracker, logger *slog.Logger) error {
	s, st, err := buildSyncer(cfg, tracker, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := s.Restore(ctx, printProgress)
	if err != nil {
		return err
	}

	fmt.Printf("restored %d trips and %d activities\n", result.Trips, result.Activities)

	return nil
}

func runStatus(tracker *state.Tracker) error {
	st, err := tracker.Get()
	if err != nil {
		return fmt.Errorf("reading sync state: %w", err)
	}

	last := "never"
	if st.LastSync > 0 {
		last = time.UnixMilli(st.LastSync).Format(time.RFC3339)
	}

	fmt.Printf("status:        %s\n", st.Status)
	fmt.Printf("last sync:     %s\n", last)
	fmt.Printf("trips:         %d\n", st.Trips)
	fmt.Printf("activities:    %d\n", st.Activities)
	fmt.Printf("auto sync:     %t\n", st.AutoSync)
	fmt.Printf("sync on login: %t\n", st.SyncOnLogin)

	needed, err := tracker.IsSyncNeeded(time.Now())
	if err != nil {
		return fmt.Errorf("checking sync state: %w", err)
	}

	fmt.Printf("sync due:      %t\n", needed)

	return nil
}
