package service

import (
	"context"
	"fmt"

	"github.com/gatchaworks/arena/internal/services/combat/domain"
)

const (
	// WinnerMonsterXP is granted to the winning monster.
	WinnerMonsterXP = 100
	// LoserMonsterXP is granted to the losing monster.
	LoserMonsterXP = 30
	// InitiatorPlayerXP is granted to the player who started the combat.
	InitiatorPlayerXP = 25
)

// RewardHooks returns the experience grants that follow every combat.
func RewardHooks(monsters MonsterSource, players PlayerRewarder) []Hook {
	return []Hook{
		{
			Name: "winner-xp",
			Run: func(ctx context.Context, combat domain.Combat) error {
				return grantMonster(ctx, monsters, combat.Winner(), WinnerMonsterXP)
			},
		},
		{
			Name: "loser-xp",
			Run: func(ctx context.Context, combat domain.Combat) error {
				return grantMonster(ctx, monsters, combat.Loser(), LoserMonsterXP)
			},
		},
		{
			Name: "player-xp",
			Run: func(ctx context.Context, combat domain.Combat) error {
				if _, err := players.GrantExperience(ctx, combat.InitiatorUsername, InitiatorPlayerXP); err != nil {
					return fmt.Errorf("grant player %s xp: %w", combat.InitiatorUsername, err)
				}
				return nil
			},
		},
	}
}

func grantMonster(ctx context.Context, monsters MonsterSource, monster domain.MonsterSnapshot, amount float64) error {
	if _, err := monsters.GrantExperience(ctx, monster.OwnerUsername, monster.ID, amount); err != nil {
		return fmt.Errorf("grant monster %s xp: %w", monster.ID, err)
	}
	return nil
}
