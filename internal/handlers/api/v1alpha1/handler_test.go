package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
	v1alpha1 "github.com/tavernkeep/gm-engine/internal/handlers/api/v1alpha1"
	"github.com/tavernkeep/gm-engine/internal/orchestrators/game"
	gamemock "github.com/tavernkeep/gm-engine/internal/orchestrators/game/mock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	games  *gamemock.MockService
	router *gin.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.ctrl = gomock.NewController(s.T())
	s.games = gamemock.NewMockService(s.ctrl)

	handler, err := v1alpha1.NewHandler(&v1alpha1.Config{GameService: s.games})
	s.Require().NoError(err)

	s.router = gin.New()
	handler.RegisterRoutes(s.router)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) testState() *entities.GameState {
	return &entities.GameState{
		SessionID: "sess_1",
		Player: &entities.CharacterSheet{
			ID:    "char_1",
			Name:  "Brakka",
			Race:  entities.RaceDwarf,
			Class: entities.ClassFighter,
			Level: 1,
			HP:    16,
			MaxHP: 16,
		},
	}
}

func (s *HandlerTestSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) TestCreateGame() {
	s.games.EXPECT().
		NewGame(gomock.Any(), &game.NewGameInput{
			PlayerName: "Brakka",
			Race:       entities.RaceDwarf,
			Class:      entities.ClassFighter,
		}).
		Return(&game.NewGameOutput{State: s.testState(), Narrative: "The inn is loud."}, nil)

	w := s.doJSON(http.MethodPost, "/api/v1alpha1/games", map[string]string{
		"player_name": "Brakka",
		"race":        "Dwarf",
		"class":       "Fighter",
	})

	s.Equal(http.StatusCreated, w.Code)

	var resp v1alpha1.GameResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("sess_1", resp.SessionID)
	s.Equal("The inn is loud.", resp.Narrative)
	s.Equal("Brakka", resp.State.Player.Name)
}

func (s *HandlerTestSuite) TestCreateGame_MissingFields() {
	w := s.doJSON(http.MethodPost, "/api/v1alpha1/games", map[string]string{
		"player_name": "Brakka",
	})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestGetGame() {
	s.games.EXPECT().
		GetState(gomock.Any(), &game.GetStateInput{SessionID: "sess_1"}).
		Return(&game.GetStateOutput{State: s.testState()}, nil)

	w := s.doJSON(http.MethodGet, "/api/v1alpha1/games/sess_1", nil)

	s.Equal(http.StatusOK, w.Code)

	var resp v1alpha1.GameResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("sess_1", resp.SessionID)
}

func (s *HandlerTestSuite) TestGetGame_NotFound() {
	s.games.EXPECT().
		GetState(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("session sess_x not found"))

	w := s.doJSON(http.MethodGet, "/api/v1alpha1/games/sess_x", nil)

	s.Equal(http.StatusNotFound, w.Code)

	var resp v1alpha1.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("NOT_FOUND", resp.Code)
}

func (s *HandlerTestSuite) TestSubmitAction() {
	s.games.EXPECT().
		SubmitAction(gomock.Any(), &game.SubmitActionInput{
			SessionID: "sess_1",
			Action:    "attack the goblin",
		}).
		Return(&game.SubmitActionOutput{
			State:       s.testState(),
			Outcome:     "Brakka attacks Goblin: 17 hits for 6 damage.",
			Narrative:   "Steel rings in the dark.",
			CombatEnded: true,
			Victory:     "victory",
		}, nil)

	w := s.doJSON(http.MethodPost, "/api/v1alpha1/games/sess_1/actions", map[string]string{
		"action": "attack the goblin",
	})

	s.Equal(http.StatusOK, w.Code)

	var resp v1alpha1.ActionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Steel rings in the dark.", resp.Narrative)
	s.True(resp.CombatEnded)
	s.Equal("victory", resp.Victory)
}

func (s *HandlerTestSuite) TestSubmitAction_ErrorMapping() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"precondition", errors.FailedPrecondition("not your turn"), http.StatusPreconditionFailed},
		{"resource", errors.ResourceExhausted("insufficient MP"), http.StatusUnprocessableEntity},
		{"invalid", errors.InvalidArgument("bad action"), http.StatusBadRequest},
		{"internal", errors.Internal("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.games.EXPECT().
				SubmitAction(gomock.Any(), gomock.Any()).
				Return(nil, tt.err)

			w := s.doJSON(http.MethodPost, "/api/v1alpha1/games/sess_1/actions", map[string]string{
				"action": "do something",
			})
			s.Equal(tt.status, w.Code)
		})
	}
}

func (s *HandlerTestSuite) TestSubmitAction_EmptyBody() {
	w := s.doJSON(http.MethodPost, "/api/v1alpha1/games/sess_1/actions", map[string]string{})
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
