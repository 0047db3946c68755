package rulebook

// Background tables. Both are indexed by a 2d6 roll (2-12) mapped onto
// twelve entries; a player choice in the same range overrides the roll.

var historyTable = []string{
	"Noble birth - You were born into a noble family with wealth and influence.",
	"Common birth - You were born into a common family, learning hard work and humility.",
	"Military background - You served in the military, learning discipline and combat.",
	"Academic pursuit - You studied in schools or under mentors, gaining knowledge.",
	"Criminal past - You lived a life of crime, learning stealth and deception.",
	"Religious upbringing - You were raised in a temple, learning faith and healing.",
	"Wandering life - You traveled extensively, learning about different cultures.",
	"Tragic loss - You suffered a great loss that shaped your worldview.",
	"Mysterious origins - Your past is shrouded in mystery, even to yourself.",
	"Artistic talent - You were trained in arts, music, or performance.",
	"Craftsman's apprentice - You learned a trade or craft from a young age.",
	"Survivor's instinct - You lived through hardship, developing resilience.",
}

var adventureReasonTable = []string{
	"Destiny calls - You feel a calling to a greater purpose.",
	"Revenge - You seek to avenge a wrong done to you or your family.",
	"Wealth - You need money to solve personal problems or desires.",
	"Knowledge - You seek to learn ancient secrets or forbidden knowledge.",
	"Protection - You must protect someone or something important.",
	"Redemption - You seek to atone for past mistakes.",
	"Curiosity - You are driven by an insatiable desire to explore.",
	"Duty - You have an obligation to your people, family, or order.",
	"Love - You search for someone or something dear to your heart.",
	"Power - You crave strength and influence in the world.",
	"Justice - You fight against evil and injustice wherever you find it.",
	"Escape - You flee from a dangerous situation or unwanted responsibility.",
}

// tableEntry maps a 2d6 roll (2-12) onto a twelve-entry table.
func tableEntry(table []string, roll int) string {
	index := roll - 2
	if index < 0 {
		index = 0
	}
	if index >= len(table) {
		index = len(table) - 1
	}
	return table[index]
}

// HistoryBackground returns the history-table entry for a 2d6 roll.
func HistoryBackground(roll int) string {
	return tableEntry(historyTable, roll)
}

// AdventureReason returns the adventure-reason entry for a 2d6 roll.
func AdventureReason(roll int) string {
	return tableEntry(adventureReasonTable, roll)
}
