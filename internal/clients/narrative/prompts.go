package narrative

import (
	"fmt"
	"strings"

	"github.com/tavernkeep/gm-engine/internal/entities"
)

// How many history entries the narrator sees. Older context costs tokens
// without improving continuity much.
const historyWindow = 10

const gameMasterSystemPrompt = `You are an expert Game Master for a medieval fantasy tabletop RPG. Your role is to:

1. Create immersive, engaging narratives in the style of classic fantasy adventures
2. Respond to player actions with appropriate narrative consequences
3. Maintain consistency in the game world and story continuity
4. Describe environments, NPCs, and events vividly and engagingly

Key guidelines:
- Always respond in the second person ("You see...", "You notice...")
- Provide clear choices when appropriate ("You could...", "Alternatively...")
- Maintain the fantasy adventure atmosphere with elements of mystery, danger, and discovery
- Mechanical results (dice rolls, damage, checks) are already resolved and given to you; describe them, never change or re-roll them
- Keep responses concise but descriptive, at most 150 words
- Stay in character as a helpful, engaging GM at all times`

const openingScenePrompt = `Write the opening scene of the adventure. Introduce the starting location, set the mood, and give the player a clear sense of what they might do first. End with an open question or choice.`

const combatPrompt = `Narrate this round of combat. The mechanical outcome below already happened; describe it cinematically from the player's point of view without changing any numbers.`

const dialoguePrompt = `The player is speaking with someone. Roleplay the other party with a distinct personality consistent with the world context, and respond in character before returning to second-person narration.`

const backstoryPrompt = `Write a character backstory of 2-3 paragraphs in past tense, third person. Weave together the character's race, class, and background into a cohesive origin story with a clear reason to seek adventure.`

// BuildPrompt renders the full prompt for one generation request. Exported
// for prompt tests; callers normally go through Client.Generate.
func BuildPrompt(input *GenerateInput) string {
	var b strings.Builder
	b.WriteString(gameMasterSystemPrompt)
	b.WriteString("\n\n")

	switch input.Kind {
	case PromptOpeningScene:
		b.WriteString(openingScenePrompt)
	case PromptCombat:
		b.WriteString(combatPrompt)
	case PromptDialogue:
		b.WriteString(dialoguePrompt)
	case PromptBackstory:
		b.WriteString(backstoryPrompt)
	}
	b.WriteString("\n\n")

	if input.State != nil {
		writeStateContext(&b, input.State)
	}

	if input.PlayerAction != "" {
		fmt.Fprintf(&b, "Player action: %s\n", input.PlayerAction)
	}
	if input.Outcome != "" {
		fmt.Fprintf(&b, "Mechanical outcome (already resolved, do not alter):\n%s\n", input.Outcome)
	}

	return b.String()
}

func writeStateContext(b *strings.Builder, state *entities.GameState) {
	b.WriteString("--- Game context ---\n")

	if state.World.Location != "" {
		fmt.Fprintf(b, "Location: %s\n", state.World.Location)
	}
	if state.World.TimeOfDay != "" || state.World.Weather != "" {
		fmt.Fprintf(b, "Time: %s, weather: %s\n", state.World.TimeOfDay, state.World.Weather)
	}
	if state.World.WorldDescription != "" {
		fmt.Fprintf(b, "World: %s\n", state.World.WorldDescription)
	}

	for _, member := range state.Party() {
		fmt.Fprintf(b, "%s, level %d %s %s, HP %d/%d\n",
			member.Name, member.Level, member.Race, member.Class, member.HP, member.MaxHP)
	}

	for _, quest := range state.ActiveQuests {
		fmt.Fprintf(b, "Active quest: %s (%s)\n", quest.Title, quest.Status)
	}

	if state.Combat.Active() {
		fmt.Fprintf(b, "Combat is underway, round %d.\n", state.Combat.Round)
		for _, enemy := range state.Combat.Enemies {
			fmt.Fprintf(b, "Enemy: %s, HP %d/%d\n", enemy.Name, enemy.HP, enemy.MaxHP)
		}
	}

	history := state.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	if len(history) > 0 {
		b.WriteString("Recent events:\n")
		for _, entry := range history {
			fmt.Fprintf(b, "[%s] %s\n", entry.Role, entry.Text)
		}
	}

	b.WriteString("--- End context ---\n\n")
}
