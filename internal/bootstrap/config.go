package bootstrap

import (
	"errors"
	"os"

	"github.com/spf13/viper"

	"littlego/internal/usecase/engine"
)

const (
	CounterStoreFile  = "file"
	CounterStoreRedis = "redis"

	ActionTableNone  = ""
	ActionTableFile  = "file"
	ActionTableRedis = "redis"
	ActionTableMongo = "mongo"
)

type Config struct {
	ServerPort     string `mapstructure:"SERVER_PORT"`
	GrpcPort       string `mapstructure:"GRPC_PORT"`
	EngineGrpcAddr string `mapstructure:"ENGINE_GRPC_ADDR"`
	RedisUrl       string `mapstructure:"REDIS_URL"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	MongoUri       string `mapstructure:"MONGO_URI"`
	MongoDatabase  string `mapstructure:"MONGO_DATABASE"`
	IsLocalCors    bool   `mapstructure:"LOCAL_CORS"`

	CounterStore string `mapstructure:"COUNTER_STORE"`
	CounterFile  string `mapstructure:"COUNTER_FILE"`

	ActionTable          string  `mapstructure:"ACTION_TABLE"`
	ActionTableFile      string  `mapstructure:"ACTION_TABLE_FILE"`
	ActionTableThreshold float64 `mapstructure:"ACTION_TABLE_THRESHOLD"`
	GreedyCapture        bool    `mapstructure:"GREEDY_CAPTURE"`

	MaxDepth       int     `mapstructure:"ENGINE_MAX_DEPTH"`
	LateMaxDepth   int     `mapstructure:"ENGINE_LATE_MAX_DEPTH"`
	LateGameFrom   int     `mapstructure:"ENGINE_LATE_GAME_FROM"`
	MoveCeiling    int     `mapstructure:"ENGINE_MOVE_CEILING"`
	StopWhenStuck  bool    `mapstructure:"ENGINE_STOP_WHEN_STUCK"`
	TiePrefersMove bool    `mapstructure:"ENGINE_TIE_PREFERS_MOVE"`
	Komi           float64 `mapstructure:"ENGINE_KOMI"`
	LibertyWeight  float64 `mapstructure:"ENGINE_LIBERTY_WEIGHT"`
	GroupWeight    float64 `mapstructure:"ENGINE_GROUP_WEIGHT"`
}

func setDefaults(v *viper.Viper) {
	def := engine.DefaultConfig()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GRPC_PORT", "8082")
	v.SetDefault("ENGINE_GRPC_ADDR", "localhost:8082")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "littlego")
	v.SetDefault("LOCAL_CORS", false)

	v.SetDefault("COUNTER_STORE", CounterStoreFile)
	v.SetDefault("COUNTER_FILE", "misc.json")

	v.SetDefault("ACTION_TABLE", ActionTableNone)
	v.SetDefault("ACTION_TABLE_FILE", "")
	v.SetDefault("ACTION_TABLE_THRESHOLD", 0.1)
	v.SetDefault("GREEDY_CAPTURE", true)

	v.SetDefault("ENGINE_MAX_DEPTH", def.Limits.MaxDepth)
	v.SetDefault("ENGINE_LATE_MAX_DEPTH", def.Limits.LateMaxDepth)
	v.SetDefault("ENGINE_LATE_GAME_FROM", def.Limits.LateGameFrom)
	v.SetDefault("ENGINE_MOVE_CEILING", def.Limits.MoveCeiling)
	v.SetDefault("ENGINE_STOP_WHEN_STUCK", def.Limits.StopWhenStuck)
	v.SetDefault("ENGINE_TIE_PREFERS_MOVE", def.TiePrefersMove)
	v.SetDefault("ENGINE_KOMI", def.KomiMagnitude)
	v.SetDefault("ENGINE_LIBERTY_WEIGHT", def.LibertyWeight)
	v.SetDefault("ENGINE_GROUP_WEIGHT", def.GroupWeight)
}

// Setup reads the .env style file at cfgPath. A missing file is not an error:
// defaults and environment variables still apply.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		err := v.ReadInConfig()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c Config) EngineConfig() engine.Config {
	return engine.Config{
		Limits: engine.Limits{
			MaxDepth:      c.MaxDepth,
			LateMaxDepth:  c.LateMaxDepth,
			LateGameFrom:  c.LateGameFrom,
			MoveCeiling:   c.MoveCeiling,
			StopWhenStuck: c.StopWhenStuck,
		},
		LibertyWeight:  c.LibertyWeight,
		GroupWeight:    c.GroupWeight,
		KomiMagnitude:  c.Komi,
		TiePrefersMove: c.TiePrefersMove,
	}
}
