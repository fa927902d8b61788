package main

import (
	"context"
	"net"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"littlego/internal/bootstrap"
	"littlego/internal/common"
	engineRPC "littlego/microservices/proto"
	"littlego/microservices/usecase"
)

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

	lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
	if err != nil {
		logger.Fatalf("cant listen port %s: %v", cfg.GrpcPort, err)
	}

	server := grpc.NewServer()
	engineRPC.RegisterEngineServiceServer(server, usecase.NewEngineUseCase(services.Turns, logger))

	go func() {
		<-ctx.Done()
		server.GracefulStop()
	}()

	logger.Infof("engine service is running on port %s", cfg.GrpcPort)
	if err := server.Serve(lis); err != nil {
		logger.Errorf("engine service stopped: %v", err)
	}
}
