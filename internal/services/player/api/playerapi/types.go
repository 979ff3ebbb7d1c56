// Package playerapi holds the player service wire types and client.
package playerapi

// Player is a player profile as served over the wire.
type Player struct {
	Username       string   `json:"username"`
	Level          int      `json:"level"`
	Experience     float64  `json:"experience"`
	ExperienceStep float64  `json:"experienceStep"`
	MonsterIDs     []string `json:"monsterIds"`
	MaxMonsters    int      `json:"maxMonsters"`
}

// InventoryFull reports whether the player can hold no more monsters.
func (p Player) InventoryFull() bool {
	return len(p.MonsterIDs) >= p.MaxMonsters
}
