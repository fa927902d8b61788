package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"littlego/internal/domain/game"
	ownErrors "littlego/internal/errors"
	engineRPC "littlego/microservices/proto"
)

// RemoteEngine asks a running engine service to play the turn.
type RemoteEngine struct {
	log     *zap.SugaredLogger
	client  engineRPC.EngineServiceClient
	timeout time.Duration
}

func NewRemoteEngine(log *zap.SugaredLogger, cc grpc.ClientConnInterface) *RemoteEngine {
	return &RemoteEngine{
		log:     log,
		client:  engineRPC.NewEngineServiceClient(cc),
		timeout: 30 * time.Second,
	}
}

// Dial opens an insecure connection to the engine service at addr.
func Dial(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func (r *RemoteEngine) Decide(ctx context.Context, req game.DecideRequest) (game.DecideResponse, error) {
	in, err := engineRPC.RequestToStruct(req)
	if err != nil {
		return game.DecideResponse{}, fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.client.Decide(ctx, in)
	if err != nil {
		if status.Code(err) == codes.InvalidArgument {
			return game.DecideResponse{}, &ownErrors.InvalidPositionError{Reason: status.Convert(err).Message()}
		}
		return game.DecideResponse{}, fmt.Errorf("engine service: %w", err)
	}

	resp, err := engineRPC.StructToResponse(out)
	if err != nil {
		return game.DecideResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}
	r.log.Debugf("remote engine chose %s for game %s", resp.Move, resp.GameID)
	return resp, nil
}
