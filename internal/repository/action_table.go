package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"littlego/internal/domain/game"
	ownErrors "littlego/internal/errors"
)

// ActionTable maps a 25 digit board string to action values keyed by "rc" point.
type ActionTable map[string]map[string]float64

// ActionTableEntry is the stored form of one board of an action table.
type ActionTableEntry struct {
	Board   string             `bson:"board"`
	Actions map[string]float64 `bson:"actions"`
}

// LoadActionTableFile reads a JSON object of the form
// {"<board>": {"<rc>": value, ...}, ...}.
func LoadActionTableFile(path string) (ActionTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read action table %s: %w", path, err)
	}
	var table ActionTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to decode action table %s: %w", path, err)
	}
	if err := table.validate(); err != nil {
		return nil, fmt.Errorf("action table %s: %w", path, err)
	}
	return table, nil
}

func (t ActionTable) validate() error {
	for board, actions := range t {
		if _, err := game.ParseBoard(board); err != nil {
			return err
		}
		for key := range actions {
			if _, ok := game.ParsePointKey(key); !ok {
				return &ownErrors.InvalidPositionError{Reason: fmt.Sprintf("bad action key %q for board %s", key, board)}
			}
		}
	}
	return nil
}

// LoadActionTables merges every *.json table found under path, which may be a
// single file or a directory.
func LoadActionTables(path string) (ActionTable, error) {
	merged := ActionTable{}
	err := filepath.Walk(path, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			return nil
		}
		table, err := LoadActionTableFile(file)
		if err != nil {
			return err
		}
		for board, actions := range table {
			merged[board] = actions
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// MemoryActionTable serves a table loaded at startup.
type MemoryActionTable struct {
	table ActionTable
}

func NewMemoryActionTable(table ActionTable) *MemoryActionTable {
	return &MemoryActionTable{table: table}
}

func (m *MemoryActionTable) Actions(_ context.Context, board string) (map[string]float64, error) {
	actions, ok := m.table[board]
	if !ok || len(actions) == 0 {
		return nil, ownErrors.ErrTableEntryNotFound
	}
	return actions, nil
}

const actionTableCollection = "action_table"

// MongoActionTable keeps one document per board in the action_table collection.
type MongoActionTable struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewMongoActionTable(log *zap.SugaredLogger, mongo *mongo.Database) *MongoActionTable {
	return &MongoActionTable{
		log:   log,
		mongo: mongo,
	}
}

func (m *MongoActionTable) Actions(ctx context.Context, board string) (map[string]float64, error) {
	var entry ActionTableEntry
	err := m.mongo.Collection(actionTableCollection).
		FindOne(ctx, bson.M{"board": board}).
		Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ownErrors.ErrTableEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up board %s: %w", board, err)
	}
	if len(entry.Actions) == 0 {
		return nil, ownErrors.ErrTableEntryNotFound
	}
	return entry.Actions, nil
}

// ImportByPath upserts every table found under path and returns the number of
// boards written.
func (m *MongoActionTable) ImportByPath(ctx context.Context, path string) (int, error) {
	table, err := LoadActionTables(path)
	if err != nil {
		return 0, err
	}

	coll := m.mongo.Collection(actionTableCollection)
	for board, actions := range table {
		_, err := coll.UpdateOne(ctx,
			bson.M{"board": board},
			bson.M{"$set": ActionTableEntry{Board: board, Actions: actions}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to store board %s: %w", board, err)
		}
	}

	m.log.Infof("imported %d boards from %s", len(table), path)
	return len(table), nil
}

const actionKeyPrefix = "littlego:actions:"

// RedisActionTable keeps one hash per board, field "rc" and value the action value.
type RedisActionTable struct {
	client *redis.Client
}

func NewRedisActionTable(client *redis.Client) *RedisActionTable {
	return &RedisActionTable{client: client}
}

func (r *RedisActionTable) Actions(ctx context.Context, board string) (map[string]float64, error) {
	fields, err := r.client.HGetAll(ctx, actionKeyPrefix+board).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to look up board %s: %w", board, err)
	}
	if len(fields) == 0 {
		return nil, ownErrors.ErrTableEntryNotFound
	}

	actions := make(map[string]float64, len(fields))
	for key, raw := range fields {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q for %s of board %s: %w", raw, key, board, err)
		}
		actions[key] = v
	}
	return actions, nil
}

// Import writes the table with one pipelined round trip.
func (r *RedisActionTable) Import(ctx context.Context, table ActionTable) error {
	pipe := r.client.Pipeline()
	for board, actions := range table {
		values := make(map[string]interface{}, len(actions))
		for key, v := range actions {
			values[key] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		pipe.HSet(ctx, actionKeyPrefix+board, values)
	}
	_, err := pipe.Exec(ctx)
	return err
}
