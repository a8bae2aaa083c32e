package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/macrocam/internal/config"
	"github.com/example/macrocam/internal/handlers"
	"github.com/example/macrocam/internal/logging"
	"github.com/example/macrocam/internal/middleware"
	"github.com/example/macrocam/internal/nutrition"
	"github.com/example/macrocam/internal/openaiclient"
	"github.com/example/macrocam/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	logger = logger.Named("macrocam_api")
	defer logger.Sync() //nolint:errcheck

	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; analysis requests will fail")
	}
	if len(cfg.RejectedOrigins) > 0 {
		logger.Warn("ignoring allowed origins without http(s) scheme", zap.Strings("origins", cfg.RejectedOrigins))
	}

	analyzer := openaiclient.NewAnalyzer(cfg.OpenAIAPIKey, logger, openaiclient.WithBaseURL(cfg.OpenAIBaseURL))
	uc := usecase.NewAnalysisUseCase(analyzer, logger)

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: newRouter(uc, cfg.AllowedOrigins, logger),
	}

	logger.Info("MacroCam API listening",
		zap.String("addr", cfg.Addr()),
		zap.Strings("allowed_origins", cfg.AllowedOrigins),
		zap.String("model", nutrition.Model),
	)
	if err := serveHTTPServer(server, cfg.ShutdownTimeout, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newRouter(uc *usecase.AnalysisUseCase, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = handlers.MultipartMemory
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.CORS(allowedOrigins),
	)
	handlers.RegisterRoutes(r, uc)
	return r
}

func serveHTTPServer(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	return serveHTTPServerWithOptions(server, shutdownTimeout, logger, nil, nil)
}

func serveHTTPServerWithOptions(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger, listener net.Listener, signalCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if listener != nil {
			err = server.Serve(listener)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var (
		sigCh       <-chan os.Signal
		stopSignals func()
	)

	if signalCh != nil {
		sigCh = signalCh
		stopSignals = func() {}
	} else {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		sigCh = ch
		stopSignals = func() {
			signal.Stop(ch)
		}
	}
	defer stopSignals()

	select {
	case err := <-errCh:
		return err
	case sig, ok := <-sigCh:
		if !ok {
			return <-errCh
		}
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}
