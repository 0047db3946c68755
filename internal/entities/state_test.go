package entities_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
)

func newState() *entities.GameState {
	return &entities.GameState{
		SessionID: "session_1",
		Player:    newFighter(),
		World: entities.WorldContext{
			Location:  "Starting Village",
			TimeOfDay: "day",
			Weather:   "clear",
		},
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPartyOrderIsStable(t *testing.T) {
	gs := newState()
	gs.PartyMembers = append(gs.PartyMembers, newWizard())

	party := gs.Party()
	require.Len(t, party, 2)
	assert.Equal(t, gs.Player, party[0])
	assert.Equal(t, gs.PartyMembers[0], party[1])
}

func TestResolveCombatantRefs(t *testing.T) {
	gs := newState()
	gs.Combat = &entities.CombatState{
		Enemies: []*entities.Monster{{ID: "mon_1", Name: "Goblin", HP: 5, MaxHP: 5}},
	}

	c, err := gs.Resolve(entities.CombatantRef{Side: entities.SideParty, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, gs.Player.Name, c.DisplayName())

	m, err := gs.Resolve(entities.CombatantRef{Side: entities.SideEnemies, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, "Goblin", m.DisplayName())

	_, err = gs.Resolve(entities.CombatantRef{Side: entities.SideEnemies, Index: 7})
	assert.True(t, errors.IsNotFound(err))

	_, err = gs.Resolve(entities.CombatantRef{Side: "bystanders", Index: 0})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestHistoryIsAppendOnlyOrdered(t *testing.T) {
	gs := newState()
	at := gs.CreatedAt

	gs.AppendHistory(entities.RolePlayer, "I open the door", at)
	gs.AppendHistory(entities.RoleGM, "The hinges scream", at.Add(time.Second))

	require.Len(t, gs.History, 2)
	assert.Equal(t, entities.RolePlayer, gs.History[0].Role)
	assert.Equal(t, entities.RoleGM, gs.History[1].Role)
	assert.Equal(t, at.Add(time.Second), gs.UpdatedAt)
}

func TestCompleteQuestMovesBetweenLists(t *testing.T) {
	gs := newState()
	gs.AddQuest(&entities.Quest{ID: "quest_1", Title: "Find the ring", Status: entities.QuestInProgress})

	require.NoError(t, gs.CompleteQuest("quest_1"))
	assert.Empty(t, gs.ActiveQuests)
	require.Len(t, gs.CompletedQuests, 1)
	assert.Equal(t, entities.QuestCompleted, gs.CompletedQuests[0].Status)

	err := gs.CompleteQuest("quest_1")
	assert.True(t, errors.IsNotFound(err))
}

func TestGameStateJSONRoundTrip(t *testing.T) {
	gs := newState()
	gs.SetFlag("met_innkeeper", true)
	gs.AppendHistory(entities.RoleGM, "Welcome to the village", gs.CreatedAt)

	data, err := json.Marshal(gs)
	require.NoError(t, err)

	var restored entities.GameState
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, gs.SessionID, restored.SessionID)
	assert.Equal(t, gs.Player.Name, restored.Player.Name)
	assert.Equal(t, gs.Player.MaxHP, restored.Player.MaxHP)
	assert.True(t, restored.Flag("met_innkeeper"))
	require.Len(t, restored.History, 1)
}
