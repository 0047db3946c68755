// Package v1alpha1 exposes the game service over HTTP. The handlers do no
// game logic; they translate between JSON and the orchestrator's types and
// map error codes onto HTTP statuses.
package v1alpha1

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
	"github.com/tavernkeep/gm-engine/internal/orchestrators/game"
)

// Handler serves the v1alpha1 game API.
type Handler struct {
	games game.Service
}

// Config holds the dependencies for the handler.
type Config struct {
	GameService game.Service
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	if c.GameService == nil {
		return errors.InvalidArgument("game service is required")
	}
	return nil
}

// NewHandler creates the API handler.
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{games: cfg.GameService}, nil
}

// RegisterRoutes mounts the v1alpha1 routes on the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/v1alpha1")
	api.POST("/games", h.createGame)
	api.GET("/games/:id", h.getGame)
	api.POST("/games/:id/actions", h.submitAction)
}

// CreateGameRequest is the new-game request body.
type CreateGameRequest struct {
	PlayerName      string `json:"player_name" binding:"required"`
	Race            string `json:"race" binding:"required"`
	Class           string `json:"class" binding:"required"`
	HistoryChoice   int    `json:"history_choice,omitempty"`
	AdventureChoice int    `json:"adventure_choice,omitempty"`
}

// GameResponse is the common session snapshot envelope.
type GameResponse struct {
	SessionID string              `json:"session_id"`
	State     *entities.GameState `json:"state"`
	Narrative string              `json:"narrative,omitempty"`
}

// ActionRequest is the submit-action request body.
type ActionRequest struct {
	Action string `json:"action" binding:"required"`
}

// ActionResponse carries one resolved turn.
type ActionResponse struct {
	SessionID     string              `json:"session_id"`
	State         *entities.GameState `json:"state"`
	Outcome       string              `json:"outcome,omitempty"`
	Narrative     string              `json:"narrative"`
	CombatStarted bool                `json:"combat_started,omitempty"`
	CombatEnded   bool                `json:"combat_ended,omitempty"`
	Victory       string              `json:"victory,omitempty"`
}

func (h *Handler) createGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.Wrapf(errors.InvalidArgument(err.Error()), "invalid request body"))
		return
	}

	out, err := h.games.NewGame(c.Request.Context(), &game.NewGameInput{
		PlayerName:      req.PlayerName,
		Race:            entities.Race(req.Race),
		Class:           entities.Class(req.Class),
		HistoryChoice:   req.HistoryChoice,
		AdventureChoice: req.AdventureChoice,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, GameResponse{
		SessionID: out.State.SessionID,
		State:     out.State,
		Narrative: out.Narrative,
	})
}

func (h *Handler) getGame(c *gin.Context) {
	out, err := h.games.GetState(c.Request.Context(), &game.GetStateInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, GameResponse{
		SessionID: out.State.SessionID,
		State:     out.State,
	})
}

func (h *Handler) submitAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.Wrapf(errors.InvalidArgument(err.Error()), "invalid request body"))
		return
	}

	out, err := h.games.SubmitAction(c.Request.Context(), &game.SubmitActionInput{
		SessionID: c.Param("id"),
		Action:    req.Action,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ActionResponse{
		SessionID:     out.State.SessionID,
		State:         out.State,
		Outcome:       out.Outcome,
		Narrative:     out.Narrative,
		CombatStarted: out.CombatStarted,
		CombatEnded:   out.CombatEnded,
		Victory:       out.Victory,
	})
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
	}

	c.JSON(status, ErrorResponse{
		Code:    code.String(),
		Message: errors.GetMessage(err),
	})
}
