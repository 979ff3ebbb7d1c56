// Package stats defines the element and stat vocabularies shared by every
// monster-handling service.
package stats

import (
	"fmt"
	"strings"
)

// Element is a monster's elemental affinity.
type Element string

const (
	ElementFire  Element = "FIRE"
	ElementWater Element = "WATER"
	ElementWind  Element = "WIND"
)

// Elements lists every element in declaration order.
var Elements = []Element{ElementFire, ElementWater, ElementWind}

// ParseElement accepts an element name in any case.
func ParseElement(raw string) (Element, error) {
	element := Element(strings.ToUpper(strings.TrimSpace(raw)))
	switch element {
	case ElementFire, ElementWater, ElementWind:
		return element, nil
	default:
		return "", fmt.Errorf("unknown element %q", raw)
	}
}

// Stat names a monster attribute a skill can scale from.
type Stat string

const (
	StatHP  Stat = "HP"
	StatATK Stat = "ATK"
	StatDEF Stat = "DEF"
	StatVIT Stat = "VIT"
)

// ParseStat accepts a stat name in any case.
func ParseStat(raw string) (Stat, error) {
	stat := Stat(strings.ToUpper(strings.TrimSpace(raw)))
	switch stat {
	case StatHP, StatATK, StatDEF, StatVIT:
		return stat, nil
	default:
		return "", fmt.Errorf("unknown stat %q", raw)
	}
}

// Ratio scales a skill's damage from a percentage of one of the attacker's stats.
type Ratio struct {
	Stat    Stat    `json:"stat" yaml:"stat"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Block is the four base stats of a monster.
type Block struct {
	HP  int `json:"hp" yaml:"hp"`
	ATK int `json:"atk" yaml:"atk"`
	DEF int `json:"def" yaml:"def"`
	VIT int `json:"vit" yaml:"vit"`
}

// Value returns the named stat. Unknown stats read as zero.
func (b Block) Value(stat Stat) int {
	switch stat {
	case StatHP:
		return b.HP
	case StatATK:
		return b.ATK
	case StatDEF:
		return b.DEF
	case StatVIT:
		return b.VIT
	default:
		return 0
	}
}
