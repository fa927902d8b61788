// Package common wires configuration into the engine, its stores and the turn
// use case. Every entry point builds its services here.
package common

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"littlego/internal/adapters"
	"littlego/internal/bootstrap"
	repo "littlego/internal/repository"
	"littlego/internal/usecase/engine"
	gameuc "littlego/internal/usecase/game"
)

type Services struct {
	Engine *engine.Engine
	Turns  *gameuc.TurnUseCase

	redis *adapters.AdapterRedis
	mongo *adapters.AdapterMongo
	log   *zap.SugaredLogger
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

// InitServices connects only the databases the configuration asks for.
func InitServices(ctx context.Context, cfg *bootstrap.Config, log *zap.SugaredLogger) (*Services, error) {
	s := &Services{log: log}

	if cfg.CounterStore == bootstrap.CounterStoreRedis || cfg.ActionTable == bootstrap.ActionTableRedis {
		s.redis = adapters.NewAdapterRedis(cfg, log)
		if err := s.redis.Init(ctx); err != nil {
			return nil, err
		}
	}
	if cfg.MongoUri != "" || cfg.ActionTable == bootstrap.ActionTableMongo {
		s.mongo = adapters.NewAdapterMongo(cfg, log)
		if err := s.mongo.Init(ctx); err != nil {
			s.Close(ctx)
			return nil, err
		}
	}

	counters, err := s.counterStore(cfg)
	if err != nil {
		s.Close(ctx)
		return nil, err
	}

	var decisions gameuc.DecisionStore
	if s.mongo != nil {
		decisions = repo.NewDecisionRepository(log, s.mongo.Database)
	}

	strategies, err := s.strategies(ctx, cfg)
	if err != nil {
		s.Close(ctx)
		return nil, err
	}

	s.Engine = engine.NewEngine(cfg.EngineConfig(), log, strategies...)
	s.Turns = gameuc.NewTurnUseCase(s.Engine, counters, decisions, log)
	return s, nil
}

func (s *Services) counterStore(cfg *bootstrap.Config) (gameuc.CounterStore, error) {
	switch cfg.CounterStore {
	case bootstrap.CounterStoreFile:
		return repo.NewFileCounterStorage(cfg.CounterFile), nil
	case bootstrap.CounterStoreRedis:
		return repo.NewRedisCounterStorage(s.redis.GetClient()), nil
	default:
		return nil, fmt.Errorf("unknown counter store %q", cfg.CounterStore)
	}
}

func (s *Services) strategies(ctx context.Context, cfg *bootstrap.Config) ([]engine.Strategy, error) {
	var strategies []engine.Strategy
	if cfg.GreedyCapture {
		strategies = append(strategies, engine.GreedyCapture{})
	}

	var lookup engine.ActionLookup
	switch cfg.ActionTable {
	case bootstrap.ActionTableNone:
		return strategies, nil
	case bootstrap.ActionTableFile:
		table, err := repo.LoadActionTables(cfg.ActionTableFile)
		if err != nil {
			return nil, err
		}
		s.log.Infof("loaded action table with %d boards", len(table))
		lookup = repo.NewMemoryActionTable(table)
	case bootstrap.ActionTableRedis:
		redisTable := repo.NewRedisActionTable(s.redis.GetClient())
		if cfg.ActionTableFile != "" {
			table, err := repo.LoadActionTables(cfg.ActionTableFile)
			if err != nil {
				return nil, err
			}
			if err := redisTable.Import(ctx, table); err != nil {
				return nil, fmt.Errorf("failed to import action table into redis: %w", err)
			}
		}
		lookup = redisTable
	case bootstrap.ActionTableMongo:
		mongoTable := repo.NewMongoActionTable(s.log, s.mongo.Database)
		if cfg.ActionTableFile != "" {
			if _, err := mongoTable.ImportByPath(ctx, cfg.ActionTableFile); err != nil {
				return nil, err
			}
		}
		lookup = mongoTable
	default:
		return nil, fmt.Errorf("unknown action table %q", cfg.ActionTable)
	}

	return append(strategies, engine.NewActionTable(lookup, cfg.ActionTableThreshold, s.log)), nil
}

func (s *Services) Close(ctx context.Context) {
	if s.mongo != nil {
		if err := s.mongo.Close(ctx); err != nil {
			s.log.Errorf("failed to close mongodb: %v", err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(ctx); err != nil {
			s.log.Errorf("failed to close redis: %v", err)
		}
	}
}
