package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/tavernkeep/gm-engine/internal/clients/narrative"
	"github.com/tavernkeep/gm-engine/internal/engine"
	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
	"github.com/tavernkeep/gm-engine/internal/orchestrators/session"
	"github.com/tavernkeep/gm-engine/internal/rulebook"
)

const (
	defaultCheckDifficulty = 12
	fleeDifficulty         = 12
	maxEncounterSize       = 2
)

// actionType classifies raw player input.
type actionType string

const (
	actionAttack   actionType = "attack"
	actionCast     actionType = "cast"
	actionSkill    actionType = "skill"
	actionFlee     actionType = "flee"
	actionDialogue actionType = "dialogue"
	actionExplore  actionType = "explore"
)

// actionPlan is the classified form of one player input.
type actionPlan struct {
	Type      actionType
	Detail    string // text after the verb: spell name, target, topic
	Skill     entities.SkillType
	Attribute entities.AttributeName
}

var attackVerbs = []string{"attack", "fight", "strike", "hit", "shoot", "stab", "swing"}

var fleeVerbs = []string{"flee", "run away", "escape", "retreat"}

var dialogueVerbs = []string{"talk", "say", "ask", "tell", "greet", "speak"}

var skillVerbs = map[string]entities.SkillType{
	"sneak":       entities.SkillStealth,
	"hide":        entities.SkillStealth,
	"search":      entities.SkillPerception,
	"investigate": entities.SkillPerception,
	"listen":      entities.SkillPerception,
	"examine":     entities.SkillPerception,
	"track":       entities.SkillSurvival,
	"forage":      entities.SkillSurvival,
	"persuade":    entities.SkillPersuade,
	"convince":    entities.SkillPersuade,
	"intimidate":  entities.SkillIntimidate,
	"threaten":    entities.SkillIntimidate,
	"deceive":     entities.SkillDeceive,
	"lie":         entities.SkillDeceive,
	"unlock":      entities.SkillLockpick,
	"lockpick":    entities.SkillLockpick,
}

var attributeVerbs = map[string]entities.AttributeName{
	"climb":  entities.AttrStrength,
	"lift":   entities.AttrStrength,
	"push":   entities.AttrStrength,
	"break":  entities.AttrStrength,
	"jump":   entities.AttrDexterity,
	"dodge":  entities.AttrDexterity,
	"swim":   entities.AttrVitality,
	"recall": entities.AttrIntelligence,
}

// classifyAction maps free-text input to a mechanical plan. Dice decide
// outcomes; this only decides which dice.
func classifyAction(text string) actionPlan {
	lowered := strings.ToLower(strings.TrimSpace(text))

	if rest, ok := verbMatch(lowered, []string{"cast"}); ok {
		return actionPlan{Type: actionCast, Detail: rest}
	}
	if rest, ok := verbMatch(lowered, fleeVerbs); ok {
		return actionPlan{Type: actionFlee, Detail: rest}
	}
	if rest, ok := verbMatch(lowered, attackVerbs); ok {
		return actionPlan{Type: actionAttack, Detail: rest}
	}
	if rest, ok := verbMatch(lowered, dialogueVerbs); ok {
		return actionPlan{Type: actionDialogue, Detail: rest}
	}
	for verb, skill := range skillVerbs {
		if rest, ok := verbMatch(lowered, []string{verb}); ok {
			return actionPlan{Type: actionSkill, Detail: rest, Skill: skill}
		}
	}
	for verb, attr := range attributeVerbs {
		if rest, ok := verbMatch(lowered, []string{verb}); ok {
			return actionPlan{Type: actionSkill, Detail: rest, Attribute: attr}
		}
	}

	return actionPlan{Type: actionExplore, Detail: lowered}
}

// verbMatch reports whether the input starts with one of the verbs, either
// bare or followed by more words, and returns the remainder.
func verbMatch(text string, verbs []string) (string, bool) {
	for _, verb := range verbs {
		if text == verb {
			return "", true
		}
		if strings.HasPrefix(text, verb+" ") {
			return strings.TrimSpace(text[len(verb):]), true
		}
	}
	return "", false
}

// SubmitAction resolves one turn: classify the input, run the mechanics
// inside the session's critical section, then narrate the committed outcome
// outside it.
func (o *orchestrator) SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if strings.TrimSpace(input.Action) == "" {
		return nil, errors.InvalidArgument("action cannot be empty")
	}

	plan := classifyAction(input.Action)

	var (
		outcomeLines  []string
		combatStarted bool
		combatEnded   bool
		victory       string
		promptKind    = narrative.PromptAction
	)

	updated, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Mutate: func(s *entities.GameState) error {
			if s.Player == nil || !s.Player.IsAlive() {
				return errors.FailedPrecondition("the player character is down; the adventure is over")
			}

			s.AppendHistory(entities.RolePlayer, input.Action, o.clock.Now())

			switch {
			case s.Combat.Active():
				promptKind = narrative.PromptCombat
				ended, out, err := o.resolveCombatTurn(s, plan, &outcomeLines)
				if err != nil {
					return err
				}
				combatEnded = ended
				victory = out
				return nil

			case plan.Type == actionAttack:
				promptKind = narrative.PromptCombat
				combatStarted = true
				ended, out, err := o.startEncounter(s, &outcomeLines)
				if err != nil {
					return err
				}
				combatEnded = ended
				victory = out
				return nil

			case plan.Type == actionCast:
				return o.castOutOfCombat(s, plan, &outcomeLines)

			case plan.Type == actionSkill:
				return o.resolveCheck(s, plan, &outcomeLines)

			case plan.Type == actionDialogue:
				promptKind = narrative.PromptDialogue
				return nil

			default:
				// Exploration and out-of-combat flee are pure narration.
				return nil
			}
		},
	})
	if err != nil {
		return nil, err
	}
	state := updated.State

	outcome := strings.Join(outcomeLines, "\n")
	text := o.narrate(ctx, &narrative.GenerateInput{
		Kind:         promptKind,
		State:        state,
		PlayerAction: input.Action,
		Outcome:      outcome,
	}, fallbackNarration(plan, outcomeLines))

	final, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: input.SessionID,
		Mutate: func(s *entities.GameState) error {
			s.AppendHistory(entities.RoleGM, text, o.clock.Now())
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &SubmitActionOutput{
		State:         final.State,
		Outcome:       outcome,
		Narrative:     text,
		CombatStarted: combatStarted,
		CombatEnded:   combatEnded,
		Victory:       victory,
	}, nil
}

// startEncounter seeds a random encounter from the bestiary and rolls
// initiative. Enemies who beat the player act immediately.
func (o *orchestrator) startEncounter(s *entities.GameState, lines *[]string) (bool, string, error) {
	types := rulebook.MonsterTypes()
	pick, err := o.roller.Roll(fmt.Sprintf("1d%d", len(types)))
	if err != nil {
		return false, "", err
	}
	typeID := types[pick.Total-1]

	count, err := o.roller.Roll(fmt.Sprintf("1d%d", maxEncounterSize))
	if err != nil {
		return false, "", err
	}

	enemies := make([]*entities.Monster, 0, count.Total)
	for i := 0; i < count.Total; i++ {
		monster, err := rulebook.NewMonster(o.idGen.Generate(), typeID)
		if err != nil {
			return false, "", err
		}
		enemies = append(enemies, monster)
	}

	result, err := o.engine.StartCombat(s, enemies)
	if err != nil {
		return false, "", err
	}

	if len(enemies) == 1 {
		*lines = append(*lines, fmt.Sprintf("A %s blocks your path!", enemies[0].Name))
	} else {
		*lines = append(*lines, fmt.Sprintf("%d %ss block your path!", len(enemies), enemies[0].Name))
	}
	*lines = append(*lines, renderInitiative(result.Order))

	return o.runEnemyTurns(s, lines)
}

// resolveCombatTurn resolves the player's combat action, then lets enemies
// act until the queue returns to the player or the encounter ends.
func (o *orchestrator) resolveCombatTurn(s *entities.GameState, plan actionPlan, lines *[]string) (bool, string, error) {
	// Enemies with higher initiative may still owe their turns.
	if ended, outcome, err := o.runEnemyTurns(s, lines); err != nil || ended {
		return ended, outcome, err
	}

	playerRef := entities.CombatantRef{Side: entities.SideParty, Index: 0}

	var action engine.Action
	switch plan.Type {
	case actionAttack:
		target, err := o.pickEnemyTarget(s, plan.Detail)
		if err != nil {
			return false, "", err
		}
		action = engine.Action{Kind: engine.ActionAttack, Target: target}

	case actionCast:
		spell, err := findSpell(s.Player, plan.Detail)
		if err != nil {
			return false, "", err
		}
		action = engine.Action{Kind: engine.ActionSpell, SpellID: spell.ID}
		if spell.Effect == entities.EffectHeal {
			action.Target = playerRef
		} else {
			target, err := o.pickEnemyTarget(s, plan.Detail)
			if err != nil {
				return false, "", err
			}
			action.Target = target
		}

	case actionFlee:
		return o.attemptFlee(s, lines)

	default:
		// Non-combat input mid-encounter costs no turn and rolls no dice.
		return false, "", nil
	}

	result, err := o.engine.ProcessTurn(s, playerRef, action)
	if err != nil {
		return false, "", err
	}
	appendTurnLines(lines, result)

	if result.Ended {
		o.finishEncounter(s, result.Outcome, lines)
		return true, result.Outcome, nil
	}

	return o.runEnemyTurns(s, lines)
}

// runEnemyTurns auto-resolves enemy turns until the player is up again or
// the encounter ends. Enemies always attack the first living party member.
func (o *orchestrator) runEnemyTurns(s *entities.GameState, lines *[]string) (bool, string, error) {
	for s.Combat.Active() {
		actor := s.Combat.CurrentRef()
		if actor.Side != entities.SideEnemies {
			return false, "", nil
		}

		target, err := firstLivingPartyRef(s)
		if err != nil {
			return false, "", err
		}

		result, err := o.engine.ProcessTurn(s, actor, engine.Action{
			Kind:   engine.ActionAttack,
			Target: target,
		})
		if err != nil {
			return false, "", err
		}
		appendTurnLines(lines, result)

		if result.Ended {
			o.finishEncounter(s, result.Outcome, lines)
			return true, result.Outcome, nil
		}
	}
	return false, "", nil
}

// attemptFlee rolls Dexterity against a fixed difficulty. Success ends the
// encounter with no spoils; failure hands the initiative to the enemies.
func (o *orchestrator) attemptFlee(s *entities.GameState, lines *[]string) (bool, string, error) {
	check, err := o.engine.PerformAbilityCheck(s.Player, entities.AttrDexterity, fleeDifficulty)
	if err != nil {
		return false, "", err
	}
	*lines = append(*lines, renderAbilityCheck("Flee", check))

	if check.Success {
		s.Combat = nil
		*lines = append(*lines, fmt.Sprintf("%s breaks away from the fight.", s.Player.Name))
		return true, outcomeFled, nil
	}

	// The failed attempt costs the player's turn.
	advancePastCurrent(s)
	return o.runEnemyTurns(s, lines)
}

// advancePastCurrent moves the queue to the next living combatant, wrapping
// with a round bump, mirroring the engine's turn advancement.
func advancePastCurrent(s *entities.GameState) {
	combat := s.Combat
	for i := 0; i < len(combat.Order); i++ {
		combat.Turn++
		if combat.Turn >= len(combat.Order) {
			combat.Turn = 0
			combat.Round++
		}
		next, err := s.Resolve(combat.CurrentRef())
		if err == nil && next.IsAlive() {
			return
		}
	}
}

const outcomeFled = "fled"

// finishEncounter grants spoils and clears combat state. Defeat marks the
// session over; the stored state remains readable post-mortem.
func (o *orchestrator) finishEncounter(s *entities.GameState, outcome string, lines *[]string) {
	switch outcome {
	case engine.OutcomeVictory:
		xp := 0
		for _, enemy := range s.Combat.Enemies {
			if !enemy.IsAlive() {
				xp += enemy.XPReward
			}
		}
		s.Player.Experience += xp
		*lines = append(*lines, fmt.Sprintf("Victory! The party earns %d experience.", xp))

		for _, drop := range o.engine.LootDrops(s.Combat.Enemies) {
			s.Inventory = append(s.Inventory, drop)
			*lines = append(*lines, fmt.Sprintf("Loot: %s.", drop.Name))
		}

	case engine.OutcomeDefeat, engine.OutcomeMutualDefeat:
		s.SetFlag("game_over", true)
		*lines = append(*lines, "The party has fallen.")
	}

	s.Combat = nil
}

// resolveCheck runs a skill or raw attribute check against the default
// difficulty.
func (o *orchestrator) resolveCheck(s *entities.GameState, plan actionPlan, lines *[]string) error {
	if plan.Skill != "" {
		check, err := o.engine.PerformSkillCheck(s.Player, plan.Skill, defaultCheckDifficulty)
		if err != nil {
			return err
		}
		*lines = append(*lines, renderSkillCheck(check))
		return nil
	}

	check, err := o.engine.PerformAbilityCheck(s.Player, plan.Attribute, defaultCheckDifficulty)
	if err != nil {
		return err
	}
	*lines = append(*lines, renderAbilityCheck(string(plan.Attribute), check))
	return nil
}

// castOutOfCombat handles spellcasting with no encounter running. Only
// restorative magic has a target here.
func (o *orchestrator) castOutOfCombat(s *entities.GameState, plan actionPlan, lines *[]string) error {
	spell, err := findSpell(s.Player, plan.Detail)
	if err != nil {
		return err
	}
	if spell.Effect != entities.EffectHeal {
		return errors.FailedPreconditionf("there is no target for %s outside combat", spell.Name)
	}

	if err := s.Player.SpendMP(spell.MPCost); err != nil {
		return errors.Wrapf(err, "cannot cast %s", spell.Name)
	}

	roll, err := o.roller.Roll(spell.EffectDice)
	if err != nil {
		return err
	}
	before := s.Player.HP
	s.Player.Heal(roll.Total)

	*lines = append(*lines, fmt.Sprintf("%s casts %s and recovers %d HP (%d/%d). MP %d/%d.",
		s.Player.Name, spell.Name, s.Player.HP-before, s.Player.HP, s.Player.MaxHP,
		s.Player.MP, s.Player.MaxMP))
	return nil
}

// pickEnemyTarget matches a named enemy or defaults to the first living one.
func (o *orchestrator) pickEnemyTarget(s *entities.GameState, detail string) (entities.CombatantRef, error) {
	detail = strings.ToLower(detail)

	firstLiving := -1
	for i, enemy := range s.Combat.Enemies {
		if !enemy.IsAlive() {
			continue
		}
		if firstLiving < 0 {
			firstLiving = i
		}
		if detail != "" && strings.Contains(detail, strings.ToLower(enemy.Name)) {
			return entities.CombatantRef{Side: entities.SideEnemies, Index: i}, nil
		}
	}

	if firstLiving < 0 {
		return entities.CombatantRef{}, errors.FailedPrecondition("no living enemies remain")
	}
	return entities.CombatantRef{Side: entities.SideEnemies, Index: firstLiving}, nil
}

func firstLivingPartyRef(s *entities.GameState) (entities.CombatantRef, error) {
	for i, member := range s.Party() {
		if member.IsAlive() {
			return entities.CombatantRef{Side: entities.SideParty, Index: i}, nil
		}
	}
	return entities.CombatantRef{}, errors.FailedPrecondition("the whole party is down")
}

// findSpell matches player input against known spells by name.
func findSpell(player *entities.CharacterSheet, detail string) (*entities.Spell, error) {
	detail = strings.ToLower(detail)
	for i := range player.Spells {
		spell := &player.Spells[i]
		if detail == "" || strings.Contains(detail, strings.ToLower(spell.Name)) {
			return spell, nil
		}
	}
	return nil, errors.NotFoundf("%s does not know a spell matching %q", player.Name, detail)
}
