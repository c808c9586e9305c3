package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/linguabridge/internal/app"
	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/logger"
	"github.com/joseph-ayodele/linguabridge/internal/server"
)

func main() {
	// .env is optional
	envErr := godotenv.Load()

	cfg := common.LoadConfig()
	closer, err := logger.Setup(app.LoggerConfig(cfg))
	if err != nil {
		_, _ = os.Stderr.WriteString("logger setup: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closer.Close()
	log := logger.WithComponent("linguabridged")
	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warn().Err(envErr).Msg("could not load .env file")
	}

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(2)
	}
	if err := cfg.RequireLLM(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(2)
	}

	addr := cfg.Server.GRPCAddr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger.Get())
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to start")
		os.Exit(1)
	}
	defer a.Close()

	svc := server.NewDocumentService(server.Deps{
		Processor:    a.Processor,
		Documents:    a.Documents,
		Translations: a.Translations,
		Feedback:     a.Feedback,
		Chat:         a.Chat,
		Export:       a.Export,
		Artifacts:    a.Processor.Artifacts(),
		UploadDir:    cfg.Storage.UploadDir,
	}, logger.WithComponent("server"))
	grpcServer, hs := server.New(svc, logger.WithComponent("grpc"))

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("failed to listen on address")
		os.Exit(1)
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- grpcServer.Serve(lis) }()
	log.Info().Str("addr", addr).Str("service", server.ServiceName).Msg("linguabridged listening")

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-serveErr:
		log.Error().Err(err).Msg("grpc serve error")
	}
	hs.Shutdown()
	grpcServer.GracefulStop()
	log.Info().Msg("stopped")
}
