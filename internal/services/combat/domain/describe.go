package domain

import "github.com/gatchaworks/arena/internal/platform/i18n/catalog"

const (
	turnDescriptionKey = "combat.turn.description"
	resultWinnerKey    = "combat.result.winner"

	shortIDLength = 8
)

// LocalizedDescriber renders turn text from the message catalog in locale.
// The returned Describer is not safe for concurrent use.
func LocalizedDescriber(locale string) Describer {
	printer := catalog.Default().Printer(locale)
	return func(attackerID string, skillNum, damage int) string {
		return printer.Sprintf(turnDescriptionKey, ShortID(attackerID), skillNum, damage)
	}
}

// DescribeWinner renders the one-line outcome of a combat in locale.
func DescribeWinner(locale string, c Combat) string {
	return catalog.Default().Printer(locale).Sprintf(resultWinnerKey, ShortID(c.WinnerID), c.TotalTurns)
}

// ShortID truncates an id to its first characters for display.
func ShortID(id string) string {
	runes := []rune(id)
	if len(runes) <= shortIDLength {
		return id
	}
	return string(runes[:shortIDLength])
}
