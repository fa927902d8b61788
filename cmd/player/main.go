// Command player plays one turn of the file protocol: it reads input.txt,
// writes the chosen move to output.txt and keeps the turn counter between
// runs.
package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"littlego/internal/bootstrap"
	"littlego/internal/common"
	"littlego/internal/domain/game"
	repo "littlego/internal/repository"
	"littlego/microservices/repository"
)

func main() {
	var (
		cfgPath = flag.String("config", ".env", "path to the .env configuration")
		input   = flag.String("input", "input.txt", "position file")
		output  = flag.String("output", "output.txt", "move file")
		gameID  = flag.String("game", "local", "game id used by the counter store")
		remote  = flag.Bool("remote", false, "ask the engine service at ENGINE_GRPC_ADDR instead of deciding locally")
	)
	flag.Parse()

	logger := common.NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(*cfgPath)
	if err != nil {
		logger.Fatalf("failed to setup configuration: %v", err)
	}

	player, pos, err := repo.ReadInputFile(*input)
	if err != nil {
		logger.Fatalf("failed to read %s: %v", *input, err)
	}

	ctx := context.Background()

	var move game.Move
	if *remote {
		move, err = decideRemote(ctx, logger, cfg.EngineGrpcAddr, *gameID, player, pos)
	} else {
		move, err = decideLocal(ctx, logger, cfg, *gameID, player, pos)
	}
	if err != nil {
		logger.Fatalf("failed to decide: %v", err)
	}

	if err := repo.WriteOutputFile(*output, move); err != nil {
		logger.Errorf("failed to write %s: %v", *output, err)
		os.Exit(1)
	}
	logger.Infof("played %s", move)
}

func decideLocal(ctx context.Context, logger *zap.SugaredLogger, cfg *bootstrap.Config, gameID string, player game.Player, pos game.Position) (game.Move, error) {
	services, err := common.InitServices(ctx, cfg, logger)
	if err != nil {
		return game.Move{}, err
	}
	defer services.Close(ctx)

	res, err := services.Turns.PlayTurn(ctx, gameID, player, pos)
	if err != nil {
		return game.Move{}, err
	}
	return res.Decision.Move, nil
}

func decideRemote(ctx context.Context, logger *zap.SugaredLogger, addr, gameID string, player game.Player, pos game.Position) (game.Move, error) {
	conn, err := repository.Dial(addr)
	if err != nil {
		return game.Move{}, err
	}
	defer conn.Close()

	resp, err := repository.NewRemoteEngine(logger, conn).Decide(ctx, game.DecideRequest{
		GameID:   gameID,
		Player:   int(player),
		Previous: pos.Previous.Rows(),
		Current:  pos.Current.Rows(),
	})
	if err != nil {
		return game.Move{}, err
	}
	return game.ParseMove(resp.Move)
}
