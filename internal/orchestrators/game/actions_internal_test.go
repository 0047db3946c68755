package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tavernkeep/gm-engine/internal/entities"
)

func TestClassifyAction(t *testing.T) {
	tests := []struct {
		input string
		want  actionPlan
	}{
		{"attack the goblin", actionPlan{Type: actionAttack, Detail: "the goblin"}},
		{"Fight", actionPlan{Type: actionAttack}},
		{"strike at the bandit leader", actionPlan{Type: actionAttack, Detail: "at the bandit leader"}},
		{"cast magic arrow", actionPlan{Type: actionCast, Detail: "magic arrow"}},
		{"Cast Cure Wounds on myself", actionPlan{Type: actionCast, Detail: "cure wounds on myself"}},
		{"flee", actionPlan{Type: actionFlee}},
		{"run away from the wolves", actionPlan{Type: actionFlee, Detail: "from the wolves"}},
		{"talk to the innkeeper", actionPlan{Type: actionDialogue, Detail: "to the innkeeper"}},
		{"ask about the missing caravan", actionPlan{Type: actionDialogue, Detail: "about the missing caravan"}},
		{"sneak past the guards", actionPlan{Type: actionSkill, Detail: "past the guards", Skill: entities.SkillStealth}},
		{"search the room", actionPlan{Type: actionSkill, Detail: "the room", Skill: entities.SkillPerception}},
		{"persuade the merchant", actionPlan{Type: actionSkill, Detail: "the merchant", Skill: entities.SkillPersuade}},
		{"climb the cliff", actionPlan{Type: actionSkill, Detail: "the cliff", Attribute: entities.AttrStrength}},
		{"open the door", actionPlan{Type: actionExplore, Detail: "open the door"}},
		{"go north", actionPlan{Type: actionExplore, Detail: "go north"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyAction(tt.input))
		})
	}
}

func TestVerbMatch_RequiresWordBoundary(t *testing.T) {
	// "hits" must not match the verb "hit" followed by a word boundary.
	_, ok := verbMatch("hitch a ride", attackVerbs)
	assert.False(t, ok)

	rest, ok := verbMatch("hit the target", attackVerbs)
	assert.True(t, ok)
	assert.Equal(t, "the target", rest)
}
