package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/notewell/minutes/internal/audio"
	"github.com/notewell/minutes/internal/config"
	"github.com/notewell/minutes/internal/gemini"
	"github.com/notewell/minutes/internal/logx"
	"github.com/notewell/minutes/internal/metrics"
	"github.com/notewell/minutes/internal/pipeline"
	"github.com/notewell/minutes/internal/secret"
	"github.com/notewell/minutes/internal/server"
)

var (
	version   = "dev"
	buildSHA  = "unknown"
	buildDate = "unknown"
)

const staleAudioAge = time.Hour

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	var cfg config.Config
	// Resolve config with precedence: defaults < file < env < args
	cfg.SetDefaults()
	cfg.ApplyEnv() // allows CONFIG_FILE from env
	// Allow --config to override file path before loading it
	for i := 1; i < len(os.Args); i++ {
		a := os.Args[i]
		if a == "--config" && i+1 < len(os.Args) {
			cfg.ConfigFile = os.Args[i+1]
			break
		}
		if strings.HasPrefix(a, "--config=") {
			cfg.ConfigFile = strings.TrimPrefix(a, "--config=")
			break
		}
	}
	if cfg.ConfigFile != "" {
		if err := cfg.LoadFile(cfg.ConfigFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			logx.Log.Fatal().Err(err).Str("path", cfg.ConfigFile).Msg("load config")
		}
	}
	cfg.ApplyEnv()
	cfg.BindFlagsFromCurrent()
	flag.Parse()
	if *showVersion {
		fmt.Printf("minutes version=%s sha=%s date=%s\n", version, buildSHA, buildDate)
		return
	}

	logx.Configure(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logx.Log.Fatal().Err(err).Msg("invalid configuration")
	}
	logx.Log.Info().
		Str("environment", cfg.Environment).
		Str("model", cfg.GeminiModel).
		Str("api_key", secret.Mask(cfg.GeminiAPIKey)).
		Msg("starting")
	metrics.SetServerBuildInfo(version, buildSHA, buildDate)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gen, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxOutputTokens)
	if err != nil {
		logx.Log.Fatal().Err(err).Msg("create gemini client")
	}

	store, err := audio.NewStore(cfg.TempDir)
	if err != nil {
		logx.Log.Fatal().Err(err).Str("dir", cfg.TempDir).Msg("create audio store")
	}
	if _, err := store.SweepStale(staleAudioAge); err != nil {
		logx.Log.Warn().Err(err).Msg("sweep stale audio")
	}

	orch := pipeline.New(gen, pipeline.Settings{
		TranscriptionTemperature: cfg.TranscriptionTemperature,
		SummarizationTemperature: cfg.SummarizationTemperature,
		Timeout:                  cfg.RequestTimeout,
	})

	handler := server.New(cfg, orch, store, version)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: handler}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logx.Log.Info().Msg("termination requested")
		cancel()
	}()
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			logx.Log.Error().Err(err).Msg("server shutdown")
		}
	}()

	logx.Log.Info().Int("port", cfg.Port).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logx.Log.Fatal().Err(err).Msg("server error")
	}
}
