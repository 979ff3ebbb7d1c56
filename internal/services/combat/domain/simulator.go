package domain

import (
	"slices"

	"github.com/gatchaworks/arena/internal/platform/i18n/catalog"
)

// MaxTurns caps a battle; reaching it with both monsters alive resolves the
// winner by remaining HP percentage.
const MaxTurns = 100

// TurnLog records one skill use. A turn in which both monsters attack yields
// two entries sharing the same turn number.
type TurnLog struct {
	Turn                int    `json:"turn"`
	AttackerID          string `json:"attackerId"`
	DefenderID          string `json:"defenderId"`
	SkillNum            int    `json:"skillNum"`
	Damage              int    `json:"damage"`
	AttackerHPRemaining int    `json:"attackerHpRemaining"`
	DefenderHPRemaining int    `json:"defenderHpRemaining"`
	Description         string `json:"description"`
}

// SimulationResult is the outcome of one battle.
type SimulationResult struct {
	Logs           []TurnLog `json:"logs"`
	WinnerID       string    `json:"winnerId"`
	WinnerUsername string    `json:"winnerUsername"`
	TotalTurns     int       `json:"totalTurns"`
}

// Describer renders the human-readable text of a log entry.
type Describer func(attackerID string, skillNum, damage int) string

// Simulator runs battles. The zero value describes turns in the base locale.
type Simulator struct {
	describe Describer
}

// NewSimulator returns a simulator that renders log text with describe.
func NewSimulator(describe Describer) Simulator {
	return Simulator{describe: describe}
}

// Simulate runs a battle with base-locale log text.
func Simulate(m1, m2 MonsterSnapshot) SimulationResult {
	return Simulator{}.Simulate(m1, m2)
}

// fighter is the per-battle mutable state of one side.
type fighter struct {
	snapshot  MonsterSnapshot
	hp        int
	skills    []SkillSnapshot
	cooldowns map[int]int
}

func newFighter(snapshot MonsterSnapshot) *fighter {
	skills := slices.Clone(snapshot.Skills)
	slices.SortStableFunc(skills, func(a, b SkillSnapshot) int { return b.Num - a.Num })
	cooldowns := make(map[int]int, len(skills))
	for _, skill := range skills {
		cooldowns[skill.Num] = 0
	}
	return &fighter{snapshot: snapshot, hp: snapshot.Stats.HP, skills: skills, cooldowns: cooldowns}
}

// ready returns the highest-numbered skill that is off cooldown.
func (f *fighter) ready() (SkillSnapshot, bool) {
	for _, skill := range f.skills {
		if f.cooldowns[skill.Num] == 0 {
			return skill, true
		}
	}
	return SkillSnapshot{}, false
}

func (f *fighter) tick() {
	for num, remaining := range f.cooldowns {
		f.cooldowns[num] = max(0, remaining-1)
	}
}

// Simulate runs a deterministic battle between m1 and m2. It never fails:
// monsters without usable skills simply never attack and the turn cap decides.
func (s Simulator) Simulate(m1, m2 MonsterSnapshot) SimulationResult {
	describe := s.describe
	if describe == nil {
		describe = LocalizedDescriber(catalog.BaseLocale)
	}

	one, two := newFighter(m1), newFighter(m2)
	first, second := one, two
	// Ties on vit go to monster1, every turn.
	if m2.Stats.VIT > m1.Stats.VIT {
		first, second = two, one
	}

	var logs []TurnLog
	turn := 0
	for one.hp > 0 && two.hp > 0 && turn < MaxTurns {
		turn++
		if entry, ok := attack(turn, first, second, describe); ok {
			logs = append(logs, entry)
			if second.hp == 0 {
				break
			}
		}
		if entry, ok := attack(turn, second, first, describe); ok {
			logs = append(logs, entry)
			if first.hp == 0 {
				break
			}
		}
		one.tick()
		two.tick()
	}

	winner := resolveWinner(one, two)
	return SimulationResult{
		Logs:           logs,
		WinnerID:       winner.snapshot.ID,
		WinnerUsername: winner.snapshot.OwnerUsername,
		TotalTurns:     turn,
	}
}

func attack(turn int, attacker, defender *fighter, describe Describer) (TurnLog, bool) {
	skill, ok := attacker.ready()
	if !ok {
		return TurnLog{}, false
	}
	damage := Damage(attacker.snapshot, defender.snapshot, skill)
	defender.hp = max(0, defender.hp-damage)
	attacker.cooldowns[skill.Num] = skill.Cooldown
	return TurnLog{
		Turn:                turn,
		AttackerID:          attacker.snapshot.ID,
		DefenderID:          defender.snapshot.ID,
		SkillNum:            skill.Num,
		Damage:              damage,
		AttackerHPRemaining: attacker.hp,
		DefenderHPRemaining: defender.hp,
		Description:         describe(attacker.snapshot.ID, skill.Num, damage),
	}, true
}

// resolveWinner picks the survivor, or at the turn cap the side with the higher
// remaining HP fraction. Exact ties favor monster1.
func resolveWinner(one, two *fighter) *fighter {
	switch {
	case one.hp <= 0:
		return two
	case two.hp <= 0:
		return one
	}
	// one.hp/base1 >= two.hp/base2, cross-multiplied; both bases are positive here.
	if int64(one.hp)*int64(two.snapshot.Stats.HP) >= int64(two.hp)*int64(one.snapshot.Stats.HP) {
		return one
	}
	return two
}
