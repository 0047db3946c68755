package v1alpha1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tavernkeep/gm-engine/internal/dice"
	"github.com/tavernkeep/gm-engine/internal/errors"
)

// DiceHandler exposes bare dice rolls, useful for out-of-band table rolls
// and for poking at notation from the command line.
type DiceHandler struct {
	roller *dice.Roller
}

// DiceHandlerConfig holds dependencies for the dice handler.
type DiceHandlerConfig struct {
	Roller *dice.Roller
}

// Validate ensures all required dependencies are present.
func (c *DiceHandlerConfig) Validate() error {
	if c.Roller == nil {
		return errors.InvalidArgument("roller is required")
	}
	return nil
}

// NewDiceHandler creates the dice handler.
func NewDiceHandler(cfg *DiceHandlerConfig) (*DiceHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &DiceHandler{roller: cfg.Roller}, nil
}

// RegisterRoutes mounts the dice routes on the router.
func (h *DiceHandler) RegisterRoutes(r gin.IRouter) {
	r.Group("/api/v1alpha1").POST("/rolls", h.roll)
}

// RollRequest is the roll request body.
type RollRequest struct {
	Notation string `json:"notation" binding:"required"`
}

// RollResponse is one evaluated roll, faces included for audit.
type RollResponse struct {
	Notation  string `json:"notation"`
	Faces     []int  `json:"faces"`
	DiceTotal int    `json:"dice_total"`
	Total     int    `json:"total"`
}

func (h *DiceHandler) roll(c *gin.Context) {
	var req RollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.Wrapf(errors.InvalidArgument(err.Error()), "invalid request body"))
		return
	}

	result, err := h.roller.Roll(req.Notation)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, RollResponse{
		Notation:  result.Expr.String(),
		Faces:     result.Faces,
		DiceTotal: result.DiceTotal,
		Total:     result.Total,
	})
}
