package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/tavernkeep/gm-engine/internal/clients/narrative"
	narrativemock "github.com/tavernkeep/gm-engine/internal/clients/narrative/mock"
	"github.com/tavernkeep/gm-engine/internal/dice"
	"github.com/tavernkeep/gm-engine/internal/engine"
	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
	"github.com/tavernkeep/gm-engine/internal/orchestrators/game"
	"github.com/tavernkeep/gm-engine/internal/orchestrators/session"
	"github.com/tavernkeep/gm-engine/internal/pkg/clock"
	"github.com/tavernkeep/gm-engine/internal/pkg/idgen"
	"github.com/tavernkeep/gm-engine/internal/repositories/gamestate"
)

type GameOrchestratorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	narrator *narrativemock.MockClient
	sessions session.Service
	svc      game.Service
	ctx      context.Context
}

func (s *GameOrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.narrator = narrativemock.NewMockClient(s.ctrl)

	repo, err := gamestate.NewInMemoryRepository(&gamestate.InMemoryConfig{
		Clock: &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
	})
	s.Require().NoError(err)

	sessions, err := session.NewOrchestrator(&session.Config{
		Repo:        repo,
		IDGenerator: idgen.NewSequential("sess"),
	})
	s.Require().NoError(err)
	s.sessions = sessions

	roller := dice.NewSeeded(4242)
	eng, err := engine.New(&engine.Config{Roller: roller})
	s.Require().NoError(err)

	svc, err := game.NewOrchestrator(&game.Config{
		Sessions:    sessions,
		Engine:      eng,
		Narrator:    s.narrator,
		Roller:      roller,
		IDGenerator: idgen.NewSequential("char"),
		Clock:       &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
	})
	s.Require().NoError(err)
	s.svc = svc
	s.ctx = context.Background()
}

func (s *GameOrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *GameOrchestratorTestSuite) expectNarration(text string) {
	s.narrator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(&narrative.GenerateOutput{Text: text}, nil)
}

func (s *GameOrchestratorTestSuite) newGame(class entities.Class) *game.NewGameOutput {
	s.expectNarration("The inn is warm and loud.")
	out, err := s.svc.NewGame(s.ctx, &game.NewGameInput{
		PlayerName: "Brakka",
		Race:       entities.RaceDwarf,
		Class:      class,
	})
	s.Require().NoError(err)
	return out
}

func (s *GameOrchestratorTestSuite) TestNewGame() {
	out := s.newGame(entities.ClassFighter)

	s.Equal("sess_1", out.State.SessionID)
	s.Equal("The inn is warm and loud.", out.Narrative)
	s.Equal("Brakka", out.State.Player.Name)
	s.Equal(entities.ClassFighter, out.State.Player.Class)
	s.Equal(out.State.Player.MaxHP, out.State.Player.HP, "fresh characters start at full HP")
	s.NotEmpty(out.State.World.Location)

	s.Require().Len(out.State.History, 1)
	s.Equal(entities.RoleGM, out.State.History[0].Role)
	s.Equal("The inn is warm and loud.", out.State.History[0].Text)
}

func (s *GameOrchestratorTestSuite) TestNewGame_NarratorDownFallsBack() {
	s.narrator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("model overloaded"))

	out, err := s.svc.NewGame(s.ctx, &game.NewGameInput{
		PlayerName: "Brakka",
		Race:       entities.RaceDwarf,
		Class:      entities.ClassFighter,
	})
	s.Require().NoError(err, "a narrator outage must not block game creation")
	s.Contains(out.Narrative, "Brakka")
	s.Contains(out.Narrative, "Fighter")
}

func (s *GameOrchestratorTestSuite) TestNewGame_RejectsUnknownClass() {
	_, err := s.svc.NewGame(s.ctx, &game.NewGameInput{
		PlayerName: "Brakka",
		Race:       entities.RaceDwarf,
		Class:      entities.Class("Necromancer"),
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *GameOrchestratorTestSuite) TestGetState() {
	created := s.newGame(entities.ClassFighter)

	got, err := s.svc.GetState(s.ctx, &game.GetStateInput{SessionID: created.State.SessionID})
	s.Require().NoError(err)
	s.Equal("Brakka", got.State.Player.Name)

	_, err = s.svc.GetState(s.ctx, &game.GetStateInput{SessionID: "sess_missing"})
	s.True(errors.IsNotFound(err))
}

func (s *GameOrchestratorTestSuite) TestSubmitAction_Exploration() {
	created := s.newGame(entities.ClassFighter)

	s.expectNarration("Dust motes drift in the lamplight.")
	out, err := s.svc.SubmitAction(s.ctx, &game.SubmitActionInput{
		SessionID: created.State.SessionID,
		Action:    "look around the room",
	})
	s.Require().NoError(err)

	s.Empty(out.Outcome, "pure exploration rolls no dice")
	s.Equal("Dust motes drift in the lamplight.", out.Narrative)

	history := out.State.History
	s.Require().Len(history, 3, "opening + player input + narration")
	s.Equal(entities.RolePlayer, history[1].Role)
	s.Equal("look around the room", history[1].Text)
	s.Equal(entities.RoleGM, history[2].Role)
}

func (s *GameOrchestratorTestSuite) TestSubmitAction_SkillCheck() {
	created := s.newGame(entities.ClassFighter)

	s.expectNarration("You sift through the straw and find a trapdoor.")
	out, err := s.svc.SubmitAction(s.ctx, &game.SubmitActionInput{
		SessionID: created.State.SessionID,
		Action:    "search the stables",
	})
	s.Require().NoError(err)
	s.Contains(out.Outcome, "Perception check")
	s.Contains(out.Outcome, "vs 12")
}

func (s *GameOrchestratorTestSuite) TestSubmitAction_AttackStartsEncounter() {
	created := s.newGame(entities.ClassFighter)

	s.expectNarration("Steel rings in the dark.")
	out, err := s.svc.SubmitAction(s.ctx, &game.SubmitActionInput{
		SessionID: created.State.SessionID,
		Action:    "attack",
	})
	s.Require().NoError(err)

	s.True(out.CombatStarted)
	s.Contains(out.Outcome, "Initiative:")
	if !out.CombatEnded {
		s.Require().NotNil(out.State.Combat)
		s.True(out.State.Combat.Active())
	} else {
		s.Nil(out.State.Combat, "ended encounters are cleared from state")
	}
}

func (s *GameOrchestratorTestSuite) TestSubmitAction_FightToTheEnd() {
	created := s.newGame(entities.ClassFighter)
	sessionID := created.State.SessionID

	s.narrator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(&narrative.GenerateOutput{Text: "The fight rages."}, nil).
		AnyTimes()

	var last *game.SubmitActionOutput
	for i := 0; i < 100; i++ {
		out, err := s.svc.SubmitAction(s.ctx, &game.SubmitActionInput{
			SessionID: sessionID,
			Action:    "attack",
		})
		s.Require().NoError(err)
		last = out
		if out.CombatEnded {
			break
		}
	}

	s.Require().NotNil(last)
	s.Require().True(last.CombatEnded, "a starter encounter must resolve within 100 exchanges")
	s.Nil(last.State.Combat)

	switch last.Victory {
	case engine.OutcomeVictory:
		s.Positive(last.State.Player.Experience, "victories award experience")
		s.True(last.State.Player.IsAlive())
	case engine.OutcomeDefeat, engine.OutcomeMutualDefeat:
		s.True(last.State.Flag("game_over"))
	default:
		s.Failf("unexpected outcome", "got %q", last.Victory)
	}
}

func (s *GameOrchestratorTestSuite) TestSubmitAction_HealOutOfCombat() {
	created := s.newGame(entities.ClassPriest)
	sessionID := created.State.SessionID
	startMP := created.State.Player.MP
	s.Require().GreaterOrEqual(startMP, 3)

	s.expectNarration("Soft light knits the wound closed.")
	out, err := s.svc.SubmitAction(s.ctx, &game.SubmitActionInput{
		SessionID: sessionID,
		Action:    "cast cure wounds",
	})
	s.Require().NoError(err)
	s.Contains(out.Outcome, "Cure Wounds")
	s.Equal(startMP-3, out.State.Player.MP)
}

func (s *GameOrchestratorTestSuite) TestSubmitAction_DamageSpellNeedsCombat() {
	created := s.newGame(entities.ClassWizard)
	sessionID := created.State.SessionID
	historyLen := len(created.State.History)
	startMP := created.State.Player.MP

	_, err := s.svc.SubmitAction(s.ctx, &game.SubmitActionInput{
		SessionID: sessionID,
		Action:    "cast magic arrow",
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	got, err := s.svc.GetState(s.ctx, &game.GetStateInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Equal(startMP, got.State.Player.MP, "rejected casts spend nothing")
	s.Len(got.State.History, historyLen, "rejected turns leave no trace in history")
}

func (s *GameOrchestratorTestSuite) TestSubmitAction_NarratorDownKeepsMechanics() {
	created := s.newGame(entities.ClassFighter)

	s.narrator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("timeout"))

	out, err := s.svc.SubmitAction(s.ctx, &game.SubmitActionInput{
		SessionID: created.State.SessionID,
		Action:    "search the cellar",
	})
	s.Require().NoError(err, "narration is degraded, never blocking")
	s.Contains(out.Outcome, "Perception check")
	s.Contains(out.Narrative, "Perception check", "fallback narration carries the mechanics")
}

func (s *GameOrchestratorTestSuite) TestSubmitAction_Validation() {
	_, err := s.svc.SubmitAction(s.ctx, &game.SubmitActionInput{SessionID: "", Action: "look"})
	s.True(errors.IsInvalidArgument(err))

	created := s.newGame(entities.ClassFighter)
	_, err = s.svc.SubmitAction(s.ctx, &game.SubmitActionInput{
		SessionID: created.State.SessionID,
		Action:    "   ",
	})
	s.True(errors.IsInvalidArgument(err))
}

func TestGameOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(GameOrchestratorTestSuite))
}
