package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/etkecc/go-apm"
	"github.com/etkecc/go-healthchecks/v2"
	"github.com/labstack/echo/v4"

	"github.com/etkecc/langdetect/internal/controllers"
	"github.com/etkecc/langdetect/internal/repository/data"
	"github.com/etkecc/langdetect/internal/services"
	"github.com/etkecc/langdetect/internal/services/classifier"
	"github.com/etkecc/langdetect/internal/services/detector"
	"github.com/etkecc/langdetect/internal/services/normalizer"
	"github.com/etkecc/langdetect/internal/version"
)

var (
	configPath string
	dataRepo   *data.Data
	hc         *healthchecks.Client
	e          *echo.Echo
)

func main() {
	quit := make(chan struct{})
	flag.StringVar(&configPath, "c", "config.yml", "Path to the config file")
	flag.Parse()

	cfg, err := services.NewConfig(configPath)
	if err != nil {
		apm.Log().Panic().Err(err).Msg("cannot read config")
	}
	initAPM(cfg)
	log := apm.Log()
	log.Info().Str("version", version.Version).Str("server", version.Server).Str("backend", cfg.Get().Detection.Backend).Msg("starting")

	dataRepo, err = data.New(cfg.Get().Path.Data)
	if err != nil {
		log.Panic().Err(err).Msg("cannot open data repository")
	}

	normalizerSvc, err := normalizer.New(cfg.Get().Patterns)
	if err != nil {
		log.Panic().Err(err).Msg("cannot create normalizer")
	}
	classifierSvc, err := classifier.New(cfg.Get().Detection)
	if err != nil {
		log.Panic().Err(err).Msg("cannot create classifier")
	}
	detectorSvc := detector.New(cfg, normalizerSvc, classifierSvc, classifierSvc)
	detectionSvc := services.NewDetection(cfg, detectorSvc, dataRepo)
	blockSvc := services.NewBlocklist(cfg)
	cacheSvc := services.NewCache(cfg)
	go detectorSvc.SupportedLanguages(apm.NewContext())

	e = echo.New()
	e.Logger = apm.EchoLogger()
	controllers.ConfigureRouter(e, cfg, detectionSvc, detectorSvc, dataRepo, blockSvc, cacheSvc, classifierSvc)

	initShutdown(quit)

	if err := e.Start(":" + cfg.Get().Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("shutting down the server")
	}

	<-quit
}

func initAPM(cfg *services.Config) {
	apm.SetName(version.Name)
	apm.SetLogLevel(cfg.Get().LogLevel)
	apm.SetSentryDSN(cfg.Get().SentryDSN)

	hcCfg := cfg.Get().Healthchecks
	if hcCfg.UUID == "" {
		return
	}
	opts := []healthchecks.Option{healthchecks.WithCheckUUID(hcCfg.UUID)}
	if hcCfg.URL != "" {
		opts = append(opts, healthchecks.WithBaseURL(hcCfg.URL))
	}
	hc = healthchecks.New(opts...)
	hc.Start(strings.NewReader("starting " + version.Name + " " + version.Version))
	go hc.Auto(time.Minute)
	apm.SetHealthchecks(hc)
}

func initShutdown(quit chan struct{}) {
	listener := make(chan os.Signal, 1)
	signal.Notify(listener, os.Interrupt, syscall.SIGABRT, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	go func() {
		<-listener
		defer close(quit)

		shutdown()
	}()
}

func shutdown() {
	log := apm.Log()
	log.Info().Msg("shutting down...")
	if hc != nil {
		hc.Shutdown()
	}
	if dataRepo != nil {
		if err := dataRepo.Close(); err != nil {
			log.Error().Err(err).Msg("cannot close data repository")
		}
	}
	apm.Flush()
	// api was not started yet
	if e == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot shutdown the server") //nolint:gocritic // that's intended
	}
}
