package domain

import (
	"fmt"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
)

// RandomSource yields uniform draws in [0,1).
type RandomSource interface {
	Float64() float64
}

// SelectTemplate picks one template with probability proportional to its
// loot rate. Templates are walked in order; a roll that survives rounding
// past the last bucket selects the last template.
func SelectTemplate(templates []MonsterTemplate, rng RandomSource) (MonsterTemplate, error) {
	if len(templates) == 0 {
		return MonsterTemplate{}, apperrors.New(apperrors.CodeNoTemplateAvailable, "no monster template available")
	}
	total := 0.0
	for _, t := range templates {
		total += t.LootRate
	}
	if total <= 0 {
		return MonsterTemplate{}, apperrors.New(apperrors.CodeNoTemplateAvailable,
			fmt.Sprintf("total loot rate must be positive, found: %v", total))
	}

	roll := rng.Float64() * total
	cumulative := 0.0
	for _, t := range templates {
		cumulative += t.LootRate
		if roll < cumulative {
			return t, nil
		}
	}
	return templates[len(templates)-1], nil
}
