package engine

import (
	"sort"

	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
)

// StartCombat transitions the session from Idle into an encounter: it
// attaches the enemy list, rolls initiative (d20 + Dexterity modifier) for
// every living combatant, and orders the queue.
//
// Tie-break is fixed and deterministic: higher Dexterity score first, then
// stable input order (party before enemies, each in list order).
func (e *Engine) StartCombat(state *entities.GameState, enemies []*entities.Monster) (*StartCombatResult, error) {
	if state == nil {
		return nil, errors.InvalidArgument("game state cannot be nil")
	}
	if state.Combat.Active() {
		return nil, errors.FailedPrecondition("combat is already active")
	}
	if len(enemies) == 0 {
		return nil, errors.InvalidArgument("combat requires at least one enemy")
	}

	combat := &entities.CombatState{
		Phase:   entities.PhaseInitiativeRolled,
		Enemies: enemies,
		Round:   1,
	}

	type rolled struct {
		entry entities.InitiativeEntry
		dex   int
	}

	var queue []rolled
	for i, member := range state.Party() {
		if !member.IsAlive() {
			continue
		}
		queue = append(queue, rolled{
			dex: member.Dexterity(),
			entry: entities.InitiativeEntry{
				Ref:        entities.CombatantRef{Side: entities.SideParty, Index: i},
				Initiative: e.roller.D20() + entities.Modifier(member.Dexterity()),
				Name:       member.DisplayName(),
			},
		})
	}
	for i, enemy := range enemies {
		if !enemy.IsAlive() {
			continue
		}
		queue = append(queue, rolled{
			dex: enemy.Dexterity(),
			entry: entities.InitiativeEntry{
				Ref:        entities.CombatantRef{Side: entities.SideEnemies, Index: i},
				Initiative: e.roller.D20() + entities.Modifier(enemy.Dexterity()),
				Name:       enemy.DisplayName(),
			},
		})
	}
	if len(queue) < 2 {
		return nil, errors.FailedPrecondition("not enough living combatants to start combat")
	}

	sort.SliceStable(queue, func(a, b int) bool {
		if queue[a].entry.Initiative != queue[b].entry.Initiative {
			return queue[a].entry.Initiative > queue[b].entry.Initiative
		}
		return queue[a].dex > queue[b].dex
	})

	combat.Order = make([]entities.InitiativeEntry, len(queue))
	for i, r := range queue {
		combat.Order[i] = r.entry
	}

	combat.Phase = entities.PhaseTurnInProgress
	combat.Turn = 0
	state.Combat = combat

	return &StartCombatResult{
		Order: combat.Order,
		First: combat.CurrentRef(),
	}, nil
}

// ProcessTurn resolves one combatant's declared action. The call is
// all-or-nothing: every validation runs before the first mutation, and a
// rejected action leaves the encounter exactly as it was.
func (e *Engine) ProcessTurn(state *entities.GameState, actor entities.CombatantRef, action Action) (*TurnResult, error) {
	if state == nil {
		return nil, errors.InvalidArgument("game state cannot be nil")
	}
	combat := state.Combat
	if !combat.Active() {
		return nil, errors.FailedPrecondition("no active combat")
	}
	if combat.Phase != entities.PhaseTurnInProgress {
		return nil, errors.FailedPreconditionf("combat is not awaiting an action (phase %s)", combat.Phase)
	}
	if combat.CurrentRef() != actor {
		return nil, errors.FailedPreconditionf("it is not %s's turn", refName(state, actor))
	}

	attacker, err := state.Resolve(actor)
	if err != nil {
		return nil, err
	}
	if !attacker.IsAlive() {
		return nil, errors.FailedPreconditionf("%s is down and cannot act", attacker.DisplayName())
	}

	target, err := state.Resolve(action.Target)
	if err != nil {
		return nil, err
	}

	result := &TurnResult{Actor: actor}

	combat.Phase = entities.PhaseAwaitingAction
	switch action.Kind {
	case ActionAttack:
		if !target.IsAlive() {
			combat.Phase = entities.PhaseTurnInProgress
			return nil, errors.FailedPreconditionf("%s is already down", target.DisplayName())
		}
		result.Attack = e.handleAttack(attacker, target)
	case ActionSpell:
		spellResult, spellErr := e.handleSpell(attacker, action.SpellID, target)
		if spellErr != nil {
			combat.Phase = entities.PhaseTurnInProgress
			return nil, spellErr
		}
		result.Spell = spellResult
	default:
		combat.Phase = entities.PhaseTurnInProgress
		return nil, errors.InvalidArgumentf("unsupported combat action: %s", action.Kind)
	}
	combat.Phase = entities.PhaseTurnComplete

	if ended, outcome := e.CheckEndCondition(state); ended {
		combat.Phase = entities.PhaseEncounterEnded
		combat.Ended = true
		combat.Outcome = outcome
		result.Ended = true
		result.Outcome = outcome
		result.Round = combat.Round
		return result, nil
	}

	e.advanceTurn(state)
	next := combat.CurrentRef()
	result.Next = &next
	result.Round = combat.Round

	return result, nil
}

// handleAttack resolves a single attack. A natural 1 always misses; a
// natural roll at or above the attacker's crit threshold always hits and
// multiplies damage. Damage reaches the defender only through TakeDamage.
func (e *Engine) handleAttack(attacker, defender entities.Combatant) *AttackResult {
	critThreshold, critMultiplier := attacker.CritProfile()

	roll := e.roller.D20()
	total := roll + attacker.AttackBonusValue()

	result := &AttackResult{
		Attacker:    attacker.DisplayName(),
		Target:      defender.DisplayName(),
		AttackRoll:  roll,
		AttackTotal: total,
		DamageDice:  attacker.WeaponDice(),
		TargetMaxHP: defender.MaxHitPoints(),
	}

	switch {
	case roll == 1:
		result.Fumble = true
	case roll >= critThreshold:
		result.Hit = true
		result.Crit = true
	default:
		result.Hit = total >= defender.DefenseValue()
	}

	if result.Hit {
		damageRoll, err := e.roller.Roll(result.DamageDice)
		if err != nil {
			// A stat block with bad dice is a data bug; land the blow for
			// minimum damage rather than corrupting the turn.
			result.Damage = 1
		} else {
			result.Damage = damageRoll.Total
		}
		if result.Crit {
			result.Damage *= critMultiplier
		}
		if result.Damage < 1 {
			result.Damage = 1
		}
		defender.TakeDamage(result.Damage)
	}

	result.TargetHP = defender.CurrentHP()
	result.TargetDown = !defender.IsAlive()

	return result
}

// handleSpell resolves a spell cast. MP is checked and deducted before any
// effect is applied; an insufficient-MP failure deducts nothing and touches
// no other state.
func (e *Engine) handleSpell(caster entities.Combatant, spellID string, target entities.Combatant) (*SpellResult, error) {
	sheet, ok := caster.(*entities.CharacterSheet)
	if !ok {
		return nil, errors.InvalidArgumentf("%s cannot cast spells", caster.DisplayName())
	}

	var spell *entities.Spell
	for i := range sheet.Spells {
		if sheet.Spells[i].ID == spellID {
			spell = &sheet.Spells[i]
			break
		}
	}
	if spell == nil {
		return nil, errors.NotFoundf("%s does not know spell %s", sheet.Name, spellID)
	}

	if err := sheet.SpendMP(spell.MPCost); err != nil {
		return nil, errors.Wrapf(err, "cannot cast %s", spell.Name)
	}

	result := &SpellResult{
		Caster:      sheet.Name,
		SpellName:   spell.Name,
		Target:      target.DisplayName(),
		MPCost:      spell.MPCost,
		CasterMP:    sheet.MP,
		Effect:      spell.Effect,
		TargetMaxHP: target.MaxHitPoints(),
	}

	effectRoll, err := e.roller.Roll(spell.EffectDice)
	amount := 1
	if err == nil {
		amount = effectRoll.Total
	}

	switch spell.Effect {
	case entities.EffectDamage:
		target.TakeDamage(amount)
	case entities.EffectHeal:
		before := target.CurrentHP()
		target.Heal(amount)
		amount = target.CurrentHP() - before
	}
	result.Amount = amount

	result.TargetHP = target.CurrentHP()
	result.TargetDown = !target.IsAlive()

	return result, nil
}

// advanceTurn moves the queue to the next living combatant, wrapping past
// the end of the order into a new round. Callers check the end condition
// first, so at least one living combatant per side exists here.
func (e *Engine) advanceTurn(state *entities.GameState) {
	combat := state.Combat

	for i := 0; i < len(combat.Order); i++ {
		combat.Turn++
		if combat.Turn >= len(combat.Order) {
			combat.Turn = 0
			combat.Round++
		}
		next, err := state.Resolve(combat.CurrentRef())
		if err == nil && next.IsAlive() {
			break
		}
	}

	combat.Phase = entities.PhaseTurnInProgress
}

// CheckEndCondition reports whether one side is fully defeated. Both sides
// are checked symmetrically so mutual defeat is detected.
func (e *Engine) CheckEndCondition(state *entities.GameState) (bool, string) {
	if state.Combat == nil {
		return false, ""
	}

	partyAlive := false
	for _, member := range state.Party() {
		if member.IsAlive() {
			partyAlive = true
			break
		}
	}

	enemiesAlive := false
	for _, enemy := range state.Combat.Enemies {
		if enemy.IsAlive() {
			enemiesAlive = true
			break
		}
	}

	switch {
	case !partyAlive && !enemiesAlive:
		return true, OutcomeMutualDefeat
	case !enemiesAlive:
		return true, OutcomeVictory
	case !partyAlive:
		return true, OutcomeDefeat
	default:
		return false, ""
	}
}

// LootDrops rolls every defeated enemy's loot table and collects the drops.
func (e *Engine) LootDrops(enemies []*entities.Monster) []entities.Item {
	var drops []entities.Item
	for _, enemy := range enemies {
		if enemy.IsAlive() {
			continue
		}
		for _, entry := range enemy.Loot {
			if e.roller.Chance(entry.Chance) {
				drops = append(drops, entry.Item)
			}
		}
	}
	return drops
}

func refName(state *entities.GameState, ref entities.CombatantRef) string {
	if c, err := state.Resolve(ref); err == nil {
		return c.DisplayName()
	}
	return "unknown combatant"
}
