package domain

// Frame is the battle state after one step of a replay. Frame 0 is the
// opening state before any attack.
type Frame struct {
	Index       int    `json:"index"`
	Turn        int    `json:"turn"`
	AttackerID  string `json:"attackerId,omitempty"`
	DefenderID  string `json:"defenderId,omitempty"`
	SkillNum    int    `json:"skillNum,omitempty"`
	Damage      int    `json:"damage,omitempty"`
	Monster1HP  int    `json:"monster1Hp"`
	Monster2HP  int    `json:"monster2Hp"`
	Description string `json:"description,omitempty"`
	Final       bool   `json:"final"`
	WinnerID    string `json:"winnerId,omitempty"`
}

// Replay rebuilds the HP timeline of c from its logs. Each log carries the
// defender's remaining HP, which is enough to track both sides.
func Replay(c Combat) []Frame {
	hp1, hp2 := c.Monster1.Stats.HP, c.Monster2.Stats.HP
	frames := make([]Frame, 0, len(c.Logs)+1)
	frames = append(frames, Frame{Monster1HP: hp1, Monster2HP: hp2})

	for i, log := range c.Logs {
		switch log.DefenderID {
		case c.Monster1.ID:
			hp1 = log.DefenderHPRemaining
		case c.Monster2.ID:
			hp2 = log.DefenderHPRemaining
		}
		frames = append(frames, Frame{
			Index:       i + 1,
			Turn:        log.Turn,
			AttackerID:  log.AttackerID,
			DefenderID:  log.DefenderID,
			SkillNum:    log.SkillNum,
			Damage:      log.Damage,
			Monster1HP:  hp1,
			Monster2HP:  hp2,
			Description: log.Description,
		})
	}

	last := &frames[len(frames)-1]
	last.Final = true
	last.WinnerID = c.WinnerID
	if last.Turn == 0 {
		last.Turn = c.TotalTurns
	}
	return frames
}
