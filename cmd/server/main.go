package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"chat-relay/infrastructure/rest"
	"chat-relay/infrastructure/ws"
	"chat-relay/internal"
	"chat-relay/observability"
	"chat-relay/repositories"
	"chat-relay/repositories/storage"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/services"

	relayauth "chat-relay/auth"
)

// Exit codes to provide meaningful status to the operating system or service
// manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// main is a thin wrapper: call run() and translate its result into an OS
	// exit code, so every defer runs before the process leaves.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & logger. A .env file is optional.
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := internal.NewLogger(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Stores: Badger for history and accounts, Bluge for search.
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	messageRepository := repositories.NewMessageRepository(db, logger, config.LimitMessages)
	roomRepository := repositories.NewRoomRepository(db)
	userRepository := repositories.NewUserRepository(db)
	searchIndex := repositories.NewSearchIndex(blugeWriter, logger, config.SearchLimit)

	// 3. Relay core: one registry and one orchestrator per process, injected
	// everywhere they are needed.
	stats := observability.NewRelayStats()
	registry := runtime.NewRegistry()
	supervisor := workers.NewSupervisor(logger)
	orchestrator := runtime.NewOrchestrator(logger, registry, supervisor, stats, config.BufferSize)
	orchestrator.AddPermanentSinks(
		storage.NewDiskSink(messageRepository, logger),
		storage.NewSearchSink(searchIndex, logger),
	)
	if err := orchestrator.Start(ctx); err != nil {
		return exitRuntime, err
	}
	supervisor.Start(ctx, observability.NewReporter(logger, stats, config.MetricInterval))

	// 4. Services and HTTP surface.
	issuer := relayauth.NewTokenIssuer(config.JWTSecret, config.AuthTokenDuration)
	chatService := services.NewChatService(orchestrator)
	authService := services.NewAuthService(userRepository, issuer)
	historyService := services.NewHistoryService(roomRepository, messageRepository, searchIndex)

	wsHandler := ws.NewHandler(chatService, logger, config.ConnectionBufferSize)
	api := rest.NewAPI(authService, historyService, logger)
	router := rest.NewRouter(api, issuer, wsHandler)

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: addr, Handler: router}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", addr)
		serverErr <- server.ListenAndServe()
	}()

	// 5. Wait for shutdown signal or server failure, then drain.
	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return exitRuntime, err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "err", err)
	}

	orchestrator.Stop()
	logger.Info("Process terminated")
	return exitOK, nil
}
