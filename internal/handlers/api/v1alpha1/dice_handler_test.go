package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavernkeep/gm-engine/internal/dice"
	v1alpha1 "github.com/tavernkeep/gm-engine/internal/handlers/api/v1alpha1"
)

func newDiceRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler, err := v1alpha1.NewDiceHandler(&v1alpha1.DiceHandlerConfig{
		Roller: dice.NewSeeded(7),
	})
	require.NoError(t, err)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func postRoll(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, "/api/v1alpha1/rolls", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoll(t *testing.T) {
	router := newDiceRouter(t)

	w := postRoll(t, router, map[string]string{"notation": "2d6+3"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp v1alpha1.RollResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "2d6+3", resp.Notation)
	require.Len(t, resp.Faces, 2)
	for _, face := range resp.Faces {
		assert.GreaterOrEqual(t, face, 1)
		assert.LessOrEqual(t, face, 6)
	}
	assert.Equal(t, resp.Faces[0]+resp.Faces[1], resp.DiceTotal)
	assert.Equal(t, resp.DiceTotal+3, resp.Total)
}

func TestRoll_InvalidNotation(t *testing.T) {
	router := newDiceRouter(t)

	for _, notation := range []string{"d6", "0d6", "2d0", "2d6/0", "abc"} {
		w := postRoll(t, router, map[string]string{"notation": notation})
		assert.Equal(t, http.StatusBadRequest, w.Code, "notation %q", notation)
	}
}

func TestRoll_MissingNotation(t *testing.T) {
	router := newDiceRouter(t)

	w := postRoll(t, router, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
