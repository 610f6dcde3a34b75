package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/MimeLyc/tubescribe/internal/audio"
	"github.com/MimeLyc/tubescribe/internal/captions"
	"github.com/MimeLyc/tubescribe/internal/config"
	"github.com/MimeLyc/tubescribe/internal/httpapi"
	"github.com/MimeLyc/tubescribe/internal/llm"
	"github.com/MimeLyc/tubescribe/internal/service"
	"github.com/MimeLyc/tubescribe/internal/speech"
	"github.com/MimeLyc/tubescribe/internal/store"
	"github.com/MimeLyc/tubescribe/internal/youtube"
	"github.com/MimeLyc/tubescribe/pkg/log"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}
	level := log.ParseLevel(cfg.Server.LogLevel)
	if cfg.Server.LogFile != "" {
		fileLogger, err := log.NewFileLogger(cfg.Server.LogFile, level)
		if err != nil {
			log.Fatal("Failed to open log file: %v", err)
		}
		defer fileLogger.Close()
		log.SetGlobalLogger(fileLogger.Logger)
	} else {
		log.InitLogger(level)
	}

	sqlStore, err := store.NewSQLiteStore(cfg.Server.DBPath)
	if err != nil {
		log.Fatal("Failed to open store: %v", err)
	}
	defer sqlStore.Close()

	acquirer := buildAcquirer(cfg, sqlStore)

	opts := []httpapi.Option{httpapi.WithRecordReader(sqlStore)}
	if completer := buildCompleter(cfg); completer != nil {
		opts = append(opts, httpapi.WithChatCompleter(completer))
	}
	server := httpapi.NewServer(acquirer, opts...)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Server.StatsCronExpr, func() {
		count, err := sqlStore.Count(context.Background())
		if err != nil {
			log.Error("Failed to count transcripts: %v", err)
			return
		}
		log.Info("Cache holds %d transcripts", count)
	}); err != nil {
		log.Fatal("Invalid STATS_CRON_EXPR %q: %v", cfg.Server.StatsCronExpr, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("Listening on %s", cfg.Server.HTTPAddr)
		if err := server.ListenAndServe(cfg.Server.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatal("Server error: %v", err)
	}
}

func buildAcquirer(cfg *config.Config, sqlStore *store.SQLiteStore) *service.Acquirer {
	captionFetcher := captions.NewYouTubeFetcher(captions.WithLanguage(cfg.Server.CaptionLanguage))

	opts := []service.AcquirerOption{
		service.WithMetadata(youtube.NewMetadataClient()),
	}
	if cfg.Speech.Enabled() {
		downloader := audio.NewDownloader(
			audio.WithBinary(cfg.Speech.YtdlpPath),
			audio.WithTimeout(cfg.Speech.DownloadTimeout()),
		)
		opts = append(opts, service.WithSpeech(downloader, buildTranscriber(cfg.Speech)))
	} else {
		log.Warn("SPEECH_API_KEY is not set; videos without captions cannot be transcribed")
	}

	return service.NewAcquirer(sqlStore, captionFetcher, opts...)
}

func buildTranscriber(cfg config.SpeechConfig) speech.Transcriber {
	switch cfg.Provider {
	case "multimodal":
		return speech.NewMultimodalClient(cfg.APIURL, cfg.APIKey, cfg.Model, cfg.RequestTimeout())
	default:
		return speech.NewWhisperClient(cfg.APIURL, cfg.APIKey, cfg.Model, cfg.RequestTimeout())
	}
}

func buildCompleter(cfg *config.Config) *llm.Client {
	if !cfg.LLM.Enabled() {
		log.Warn("LLM_API_KEY is not set; chat and content generation are disabled")
		return nil
	}
	client, err := llm.NewClient(&llm.Config{
		APIKey:      cfg.LLM.APIKey,
		APIURL:      cfg.LLM.APIURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to create LLM client: %v", err)
	}
	return client
}
