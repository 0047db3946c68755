package game

import (
	"fmt"
	"strings"

	"github.com/tavernkeep/gm-engine/internal/engine"
	"github.com/tavernkeep/gm-engine/internal/entities"
)

const startingLocation = "The Rusty Flagon, a roadside inn on the edge of the frontier"

// fallbackOpening is the templated opening used when the narrator is down.
func fallbackOpening(player *entities.CharacterSheet) string {
	return fmt.Sprintf(
		"You are %s, a %s %s. %s The common room of the Rusty Flagon hums "+
			"with low conversation as travelers trade rumors of the frontier. "+
			"Your adventure begins here. What do you do?",
		player.Name, player.Race, player.Class, player.AdventureReason)
}

// fallbackNarration turns the mechanical outcome into serviceable prose when
// the narrator is down. The mechanics always reach the player.
func fallbackNarration(plan actionPlan, outcomeLines []string) string {
	if len(outcomeLines) > 0 {
		return strings.Join(outcomeLines, " ")
	}

	switch plan.Type {
	case actionDialogue:
		return "They listen and weigh your words carefully."
	case actionFlee:
		return "You put distance between yourself and trouble."
	default:
		return "You take in your surroundings, alert for anything out of place."
	}
}

func renderInitiative(order []entities.InitiativeEntry) string {
	names := make([]string, len(order))
	for i, entry := range order {
		names[i] = fmt.Sprintf("%s (%d)", entry.Name, entry.Initiative)
	}
	return "Initiative: " + strings.Join(names, ", ") + "."
}

func renderAttack(atk *engine.AttackResult) string {
	switch {
	case atk.Fumble:
		return fmt.Sprintf("%s attacks %s: natural 1, a fumble!",
			atk.Attacker, atk.Target)
	case atk.Crit:
		return fmt.Sprintf("%s attacks %s: natural %d, critical hit for %d damage! %s",
			atk.Attacker, atk.Target, atk.AttackRoll, atk.Damage, renderTargetHP(atk.Target, atk.TargetHP, atk.TargetMaxHP, atk.TargetDown))
	case atk.Hit:
		return fmt.Sprintf("%s attacks %s: %d hits for %d damage. %s",
			atk.Attacker, atk.Target, atk.AttackTotal, atk.Damage, renderTargetHP(atk.Target, atk.TargetHP, atk.TargetMaxHP, atk.TargetDown))
	default:
		return fmt.Sprintf("%s attacks %s: %d misses.",
			atk.Attacker, atk.Target, atk.AttackTotal)
	}
}

func renderSpell(sp *engine.SpellResult) string {
	switch sp.Effect {
	case entities.EffectHeal:
		return fmt.Sprintf("%s casts %s on %s, restoring %d HP (%d/%d).",
			sp.Caster, sp.SpellName, sp.Target, sp.Amount, sp.TargetHP, sp.TargetMaxHP)
	default:
		return fmt.Sprintf("%s casts %s at %s for %d damage. %s",
			sp.Caster, sp.SpellName, sp.Target, sp.Amount, renderTargetHP(sp.Target, sp.TargetHP, sp.TargetMaxHP, sp.TargetDown))
	}
}

func renderTargetHP(name string, hp, maxHP int, down bool) string {
	if down {
		return fmt.Sprintf("%s goes down!", name)
	}
	return fmt.Sprintf("%s is at %d/%d HP.", name, hp, maxHP)
}

func renderSkillCheck(check *engine.SkillCheckResult) string {
	verdict := "failure"
	if check.Success {
		verdict = "success"
	}
	return fmt.Sprintf("%s check: rolled %d + %d = %d vs %d, %s.",
		check.Skill, check.Roll, check.Bonus, check.Total, check.Difficulty, verdict)
}

func renderAbilityCheck(label string, check *engine.AbilityCheckResult) string {
	verdict := "failure"
	if check.Success {
		verdict = "success"
	}
	return fmt.Sprintf("%s check: rolled %d + %d = %d vs %d, %s.",
		label, check.Roll, check.Bonus, check.Total, check.Difficulty, verdict)
}

func appendTurnLines(lines *[]string, result *engine.TurnResult) {
	if result.Attack != nil {
		*lines = append(*lines, renderAttack(result.Attack))
	}
	if result.Spell != nil {
		*lines = append(*lines, renderSpell(result.Spell))
	}
}
