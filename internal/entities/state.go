package entities

import (
	"time"

	"github.com/tavernkeep/gm-engine/internal/errors"
)

// WorldContext is the narrative backdrop the orchestrator feeds to the
// narrative collaborator.
type WorldContext struct {
	Location         string `json:"location"`
	WorldDescription string `json:"world_description"`
	TimeOfDay        string `json:"time_of_day"`
	Weather          string `json:"weather"`
}

// HistoryRole identifies who produced a history entry.
type HistoryRole string

// History roles.
const (
	RolePlayer HistoryRole = "player"
	RoleGM     HistoryRole = "gm"
	RoleSystem HistoryRole = "system"
)

// HistoryEntry is one line of the append-only session log.
type HistoryEntry struct {
	Role HistoryRole `json:"role"`
	Text string      `json:"text"`
	At   time.Time   `json:"at"`
}

// GameState is the aggregate root for one session. It exclusively owns all
// nested entities; CombatState only references them.
type GameState struct {
	SessionID string `json:"session_id"`

	Player       *CharacterSheet   `json:"player"`
	PartyMembers []*CharacterSheet `json:"party_members,omitempty"`

	ActiveQuests    []*Quest `json:"active_quests,omitempty"`
	CompletedQuests []*Quest `json:"completed_quests,omitempty"`

	World     WorldContext    `json:"world"`
	Inventory []Item          `json:"inventory,omitempty"` // shared party inventory
	Combat    *CombatState    `json:"combat,omitempty"`
	Flags     map[string]bool `json:"flags,omitempty"`

	History []HistoryEntry `json:"history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Party returns the full party in stable order: player first, then members.
func (gs *GameState) Party() []*CharacterSheet {
	party := make([]*CharacterSheet, 0, 1+len(gs.PartyMembers))
	if gs.Player != nil {
		party = append(party, gs.Player)
	}
	party = append(party, gs.PartyMembers...)
	return party
}

// Resolve turns a combatant reference into the combatant it points at.
func (gs *GameState) Resolve(ref CombatantRef) (Combatant, error) {
	switch ref.Side {
	case SideParty:
		party := gs.Party()
		if ref.Index < 0 || ref.Index >= len(party) {
			return nil, errors.NotFoundf("no party combatant at index %d", ref.Index)
		}
		return party[ref.Index], nil
	case SideEnemies:
		if gs.Combat == nil || ref.Index < 0 || ref.Index >= len(gs.Combat.Enemies) {
			return nil, errors.NotFoundf("no enemy combatant at index %d", ref.Index)
		}
		return gs.Combat.Enemies[ref.Index], nil
	default:
		return nil, errors.InvalidArgumentf("unknown combat side: %s", ref.Side)
	}
}

// AppendHistory appends to the session log. The log is append-only; nothing
// in the engine rewrites past entries.
func (gs *GameState) AppendHistory(role HistoryRole, text string, at time.Time) {
	gs.History = append(gs.History, HistoryEntry{Role: role, Text: text, At: at})
	gs.UpdatedAt = at
}

// AddQuest registers a new active quest.
func (gs *GameState) AddQuest(q *Quest) {
	gs.ActiveQuests = append(gs.ActiveQuests, q)
}

// CompleteQuest moves an active quest to the completed list.
func (gs *GameState) CompleteQuest(questID string) error {
	for i, q := range gs.ActiveQuests {
		if q.ID == questID {
			if err := q.Complete(); err != nil {
				return err
			}
			gs.ActiveQuests = append(gs.ActiveQuests[:i], gs.ActiveQuests[i+1:]...)
			gs.CompletedQuests = append(gs.CompletedQuests, q)
			return nil
		}
	}
	return errors.NotFoundf("active quest %s not found", questID)
}

// SetFlag records a story flag.
func (gs *GameState) SetFlag(name string, value bool) {
	if gs.Flags == nil {
		gs.Flags = make(map[string]bool)
	}
	gs.Flags[name] = value
}

// Flag reads a story flag, defaulting to false.
func (gs *GameState) Flag(name string) bool {
	return gs.Flags[name]
}
