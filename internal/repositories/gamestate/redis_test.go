package gamestate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
	"github.com/tavernkeep/gm-engine/internal/pkg/clock"
	"github.com/tavernkeep/gm-engine/internal/repositories/gamestate"
	"github.com/tavernkeep/gm-engine/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    gamestate.Repository
	cleanup func()
	clock   *clock.Fixed
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.clock = &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}

	repo, err := gamestate.NewRedisRepository(&gamestate.Config{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) newState(sessionID string) *entities.GameState {
	return &entities.GameState{
		SessionID: sessionID,
		Player: &entities.CharacterSheet{
			ID:    "char_1",
			Name:  "Brakka",
			Class: entities.ClassFighter,
			Level: 1,
			HP:    16,
			MaxHP: 16,
		},
		World: entities.WorldContext{Location: "The Rusty Flagon"},
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	state := s.newState("sess_1")

	created, err := s.repo.Create(s.ctx, gamestate.CreateInput{State: state})
	s.Require().NoError(err)
	s.Equal(s.clock.T, created.State.CreatedAt)
	s.Equal(s.clock.T, created.State.UpdatedAt)

	got, err := s.repo.Get(s.ctx, gamestate.GetInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.Equal("sess_1", got.State.SessionID)
	s.Equal("Brakka", got.State.Player.Name)
	s.Equal("The Rusty Flagon", got.State.World.Location)
	s.True(got.State.CreatedAt.Equal(s.clock.T))
}

func (s *RedisRepositoryTestSuite) TestCreate_DuplicateID() {
	_, err := s.repo.Create(s.ctx, gamestate.CreateInput{State: s.newState("sess_1")})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, gamestate.CreateInput{State: s.newState("sess_1")})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestCreate_Validation() {
	_, err := s.repo.Create(s.ctx, gamestate.CreateInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, gamestate.CreateInput{State: &entities.GameState{}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, gamestate.GetInput{SessionID: "sess_missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	_, err := s.repo.Create(s.ctx, gamestate.CreateInput{State: s.newState("sess_1")})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, gamestate.GetInput{SessionID: "sess_1"})
	s.Require().NoError(err)

	s.clock.T = s.clock.T.Add(time.Hour)
	got.State.Player.TakeDamage(6)
	got.State.World.Location = "Darkwood Forest"
	s.Require().NoError(s.repo.Update(s.ctx, got.State))

	reloaded, err := s.repo.Get(s.ctx, gamestate.GetInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.Equal(10, reloaded.State.Player.HP)
	s.Equal("Darkwood Forest", reloaded.State.World.Location)
	s.True(reloaded.State.UpdatedAt.After(reloaded.State.CreatedAt))
}

func (s *RedisRepositoryTestSuite) TestUpdate_NotFound() {
	err := s.repo.Update(s.ctx, s.newState("sess_missing"))
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, gamestate.CreateInput{State: s.newState("sess_1")})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, gamestate.DeleteInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.True(out.Deleted)

	_, err = s.repo.Get(s.ctx, gamestate.GetInput{SessionID: "sess_1"})
	s.True(errors.IsNotFound(err))

	out, err = s.repo.Delete(s.ctx, gamestate.DeleteInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.False(out.Deleted, "deleting twice is not an error")
}

func (s *RedisRepositoryTestSuite) TestList() {
	for _, id := range []string{"sess_b", "sess_a", "sess_c"} {
		_, err := s.repo.Create(s.ctx, gamestate.CreateInput{State: s.newState(id)})
		s.Require().NoError(err)
	}

	out, err := s.repo.List(s.ctx, gamestate.ListInput{})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"sess_a", "sess_b", "sess_c"}, out.SessionIDs)
}

func (s *RedisRepositoryTestSuite) TestCombatStateRoundTrips() {
	state := s.newState("sess_1")
	state.Combat = &entities.CombatState{
		Phase: entities.PhaseTurnInProgress,
		Enemies: []*entities.Monster{
			{ID: "mon_1", TypeID: "goblin", Name: "Goblin", HP: 5, MaxHP: 5},
		},
		Order: []entities.InitiativeEntry{
			{Ref: entities.CombatantRef{Side: entities.SideParty, Index: 0}, Initiative: 14, Name: "Brakka"},
			{Ref: entities.CombatantRef{Side: entities.SideEnemies, Index: 0}, Initiative: 9, Name: "Goblin"},
		},
		Round: 2,
	}

	_, err := s.repo.Create(s.ctx, gamestate.CreateInput{State: state})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, gamestate.GetInput{SessionID: "sess_1"})
	s.Require().NoError(err)
	s.Require().NotNil(got.State.Combat)
	s.Equal(entities.PhaseTurnInProgress, got.State.Combat.Phase)
	s.Equal(2, got.State.Combat.Round)
	s.Require().Len(got.State.Combat.Enemies, 1)
	s.Equal("Goblin", got.State.Combat.Enemies[0].Name)
	s.Equal(entities.SideEnemies, got.State.Combat.Order[1].Ref.Side)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func TestInMemoryRepository(t *testing.T) {
	fixed := &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	repo, err := gamestate.NewInMemoryRepository(&gamestate.InMemoryConfig{Clock: fixed})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	state := &entities.GameState{
		SessionID: "sess_1",
		Player:    &entities.CharacterSheet{ID: "char_1", Name: "Brakka", HP: 16, MaxHP: 16},
	}

	if _, err := repo.Create(ctx, gamestate.CreateInput{State: state}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get(ctx, gamestate.GetInput{SessionID: "sess_1"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	// Stored state must be isolated from caller mutations.
	got.State.Player.Name = "Mutated"
	reloaded, err := repo.Get(ctx, gamestate.GetInput{SessionID: "sess_1"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reloaded.State.Player.Name != "Brakka" {
		t.Fatalf("stored state mutated through a returned copy: %q", reloaded.State.Player.Name)
	}
}
