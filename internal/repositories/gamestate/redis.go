package gamestate

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
	"github.com/tavernkeep/gm-engine/internal/pkg/clock"
	redisclient "github.com/tavernkeep/gm-engine/internal/redis"
)

const (
	// Key pattern: game_state:{session_id}
	stateKeyPrefix = "game_state:"
	stateIndexKey  = "game_state:index"

	errStateNil       = "game state cannot be nil"
	errSessionIDEmpty = "session ID cannot be empty"
)

// Config holds the configuration for the Redis repository.
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for game sessions.
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create stores a new session. The session ID must be unused; sessions never
// expire on their own.
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if input.State.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	now := r.clock.Now()
	input.State.CreatedAt = now
	input.State.UpdatedAt = now

	stateJSON, err := json.Marshal(input.State)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal game state")
	}

	key := r.buildKey(input.State.SessionID)
	set, err := r.client.SetNX(ctx, key, stateJSON, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store game state in Redis")
	}
	if !set {
		return nil, errors.AlreadyExistsf("session %s already exists", input.State.SessionID)
	}

	if err := r.client.SAdd(ctx, stateIndexKey, input.State.SessionID).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to index session")
	}

	return &CreateOutput{State: input.State}, nil
}

// Get retrieves a session by ID.
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	stateJSON, err := r.client.Get(ctx, r.buildKey(input.SessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("session %s not found", input.SessionID)
		}
		return nil, errors.Wrapf(err, "failed to get game state from Redis")
	}

	var state entities.GameState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal game state")
	}

	return &GetOutput{State: &state}, nil
}

// Update replaces an existing session wholesale.
func (r *redisRepository) Update(ctx context.Context, state *entities.GameState) error {
	if state == nil {
		return errors.InvalidArgument(errStateNil)
	}
	if state.SessionID == "" {
		return errors.InvalidArgument(errSessionIDEmpty)
	}

	key := r.buildKey(state.SessionID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to check session existence")
	}
	if exists == 0 {
		return errors.NotFoundf("session %s not found", state.SessionID)
	}

	state.UpdatedAt = r.clock.Now()

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal game state")
	}

	if err := r.client.Set(ctx, key, stateJSON, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to update game state in Redis")
	}

	return nil
}

// Delete removes a session and its index entry.
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	pipe := r.client.TxPipeline()
	delCmd := pipe.Del(ctx, r.buildKey(input.SessionID))
	pipe.SRem(ctx, stateIndexKey, input.SessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete game state from Redis")
	}

	return &DeleteOutput{Deleted: delCmd.Val() > 0}, nil
}

// List returns all stored session IDs.
func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, stateIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list sessions")
	}

	return &ListOutput{SessionIDs: ids}, nil
}

func (r *redisRepository) buildKey(sessionID string) string {
	return fmt.Sprintf("%s%s", stateKeyPrefix, sessionID)
}
