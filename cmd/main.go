package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"littlego/internal/bootstrap"
	"littlego/internal/common"
	gameDelivery "littlego/internal/delivery/game"
	ownMiddleware "littlego/internal/middleware"
	engineRPC "littlego/microservices/proto"
	"littlego/microservices/usecase"
)

type mainDeliveryHandler struct {
	game *gameDelivery.GameHandler
}

func main() {
	logger := common.NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := common.InitServices(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init services: %v", err)
	}
	defer services.Close(context.Background())

	handlers := &mainDeliveryHandler{
		game: gameDelivery.NewGameHandler(logger, services.Turns),
	}
	r := chi.NewRouter()
	handlers.Router(r, cfg.IsLocalCors)

	httpServer := &http.Server{Addr: ":" + cfg.ServerPort, Handler: r}
	grpcServer := grpc.NewServer()
	engineRPC.RegisterEngineServiceServer(grpcServer, usecase.NewEngineUseCase(services.Turns, logger))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("HTTP server is running on port %s", cfg.ServerPort)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
		if err != nil {
			return err
		}
		logger.Infof("gRPC server is running on port %s", cfg.GrpcPort)
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("server stopped: %v", err)
	}
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h.game.Routes(r)
}
