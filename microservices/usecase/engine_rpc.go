package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"littlego/internal/domain/game"
	ownErrors "littlego/internal/errors"
	engineRPC "littlego/microservices/proto"
)

type TurnDecider interface {
	Decide(ctx context.Context, req game.DecideRequest) (game.DecideResponse, error)
}

type EngineUseCase struct {
	turns TurnDecider
	log   *zap.SugaredLogger
	engineRPC.UnimplementedEngineServiceServer
}

func NewEngineUseCase(turns TurnDecider, log *zap.SugaredLogger) *EngineUseCase {
	return &EngineUseCase{
		turns: turns,
		log:   log,
	}
}

func (e *EngineUseCase) Decide(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := engineRPC.StructToRequest(in)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}

	resp, err := e.turns.Decide(ctx, req)
	if err != nil {
		e.log.Errorf("rpc decide failed: %v", err)
		return nil, toStatus(err)
	}

	out, err := engineRPC.ResponseToStruct(resp)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, ownErrors.ErrInvalidPosition):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ownErrors.ErrGameNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
