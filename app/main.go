package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gui-Oba/FocusAid/app/api"
	"github.com/Gui-Oba/FocusAid/app/cfg"
	"github.com/Gui-Oba/FocusAid/app/clock"
	"github.com/Gui-Oba/FocusAid/app/database"
	"github.com/Gui-Oba/FocusAid/app/dom"
	"github.com/Gui-Oba/FocusAid/app/engine"
	"github.com/Gui-Oba/FocusAid/app/hostblock"
	"github.com/Gui-Oba/FocusAid/app/list"
	"github.com/Gui-Oba/FocusAid/app/match"
	"github.com/Gui-Oba/FocusAid/app/profile"
	"github.com/Gui-Oba/FocusAid/app/watch"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting FocusAid", "version", appCfg.Version, "page", appCfg.PagePath, "host", appCfg.PageHost)

	ctx := context.Background()
	loader := list.NewLoader(&http.Client{}, appCfg.UserAgent, time.Duration(appCfg.ListTimeout)*time.Second)

	// Blocked hosts are checked before anything else. A blocked host is
	// terminal: the page is replaced and no filtering runs.
	blockRules := loader.RunFailClosed(ctx, appCfg.BlockList)
	blockTarget := appCfg.OutputPath
	if blockTarget == "" {
		blockTarget = appCfg.PagePath
	}
	blocker := hostblock.NewBlocker(blockRules, blockTarget)
	if blocker.ShouldBlock(appCfg.PageHost) {
		if err := blocker.Run(appCfg.PageHost); err != nil {
			slog.Error("Failed to write block page", "error", err)
			os.Exit(1)
		}
		return
	}

	// Only snapshots captured from the target site are filtered.
	siteMatcher := match.NewHostMatcher([]string{"*." + appCfg.SiteHost})
	if !siteMatcher.Matches(appCfg.PageHost) {
		slog.Info("Page host is not the target site, nothing to do",
			"host", appCfg.PageHost, "site", appCfg.SiteHost)
		return
	}

	// Fail closed: if the list cannot be read, nothing is allowed.
	allowLines := loader.RunFailClosed(ctx, appCfg.AllowList)
	matcher := match.NewMatcher(allowLines)
	slog.Info("Allow list loaded", "source", appCfg.AllowList, "entries", matcher.Size())

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	prof := profile.Default()
	if appCfg.ProfilePath != "" {
		prof, err = profile.Load(appCfg.ProfilePath)
		if err != nil {
			slog.Error("Failed to load site profile", "path", appCfg.ProfilePath, "error", err)
			os.Exit(1)
		}
		slog.Info("Site profile loaded", "path", appCfg.ProfilePath)
	}

	page, err := dom.Load(appCfg.PagePath, prof)
	if err != nil {
		slog.Error("Failed to parse page snapshot", "path", appCfg.PagePath, "error", err)
		os.Exit(1)
	}
	page.InjectPrePaintStyle()

	passRepo := database.NewPassRepository(db)
	eng := engine.New(page, matcher, prof, passRepo, appCfg.OutputPath)

	// One pass against the initial snapshot, then passes are driven by
	// the change observer.
	eng.RunPass("startup")

	sched := watch.NewScheduler(clock.Real(),
		time.Duration(appCfg.DebounceMs)*time.Millisecond,
		func() { eng.RunPass("mutation") })
	defer sched.Stop()

	observer, err := watch.NewObserver(appCfg.PagePath, sched)
	if err != nil {
		slog.Error("Failed to watch page snapshot", "path", appCfg.PagePath, "error", err)
		os.Exit(1)
	}
	observer.Start()
	defer observer.Stop()
	slog.Info("Change observer started", "path", appCfg.PagePath, "debounce_ms", appCfg.DebounceMs)

	apiHandler := api.NewHandler(eng, passRepo, loader)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server started", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Observer and scheduler are stopped via defer
	slog.Info("Shutdown complete")
}
