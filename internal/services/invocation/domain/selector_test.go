package domain

import (
	"math"
	"testing"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
	"github.com/gatchaworks/arena/internal/random"
)

type fixedRoll float64

func (f fixedRoll) Float64() float64 { return float64(f) }

func weighted(rates ...float64) []MonsterTemplate {
	templates := make([]MonsterTemplate, 0, len(rates))
	for i, rate := range rates {
		templates = append(templates, MonsterTemplate{ID: i + 1, LootRate: rate})
	}
	return templates
}

func TestSelectTemplateDistribution(t *testing.T) {
	templates := weighted(0.3, 0.3, 0.3, 0.1)
	rng := random.NewSeededSource(42)

	const draws = 10000
	counts := map[int]int{}
	for range draws {
		template, err := SelectTemplate(templates, rng)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		counts[template.ID]++
	}

	for _, template := range templates {
		got := float64(counts[template.ID]) / draws
		if math.Abs(got-template.LootRate) > 0.03 {
			t.Fatalf("template %d frequency = %.3f, want %.2f +/- 0.03", template.ID, got, template.LootRate)
		}
	}
}

func TestSelectTemplateSingleTemplate(t *testing.T) {
	templates := weighted(0.05)
	rng := random.NewSeededSource(7)
	for range 100 {
		template, err := SelectTemplate(templates, rng)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if template.ID != 1 {
			t.Fatalf("template = %d, want 1", template.ID)
		}
	}
}

func TestSelectTemplateBuckets(t *testing.T) {
	templates := weighted(1, 2, 1)
	tests := []struct {
		roll float64
		want int
	}{
		{0, 1},
		{0.2499, 1},
		{0.25, 2},
		{0.7499, 2},
		{0.75, 3},
		{0.9999, 3},
	}
	for _, tc := range tests {
		got, err := SelectTemplate(templates, fixedRoll(tc.roll))
		if err != nil {
			t.Fatalf("select(%v): %v", tc.roll, err)
		}
		if got.ID != tc.want {
			t.Fatalf("select(%v) = %d, want %d", tc.roll, got.ID, tc.want)
		}
	}
}

func TestSelectTemplateRoundingFallsThroughToLast(t *testing.T) {
	got, err := SelectTemplate(weighted(0.5, 0.5), fixedRoll(1))
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got.ID != 2 {
		t.Fatalf("template = %d, want 2", got.ID)
	}
}

func TestSelectTemplateRejectsEmptyAndZeroWeights(t *testing.T) {
	for name, templates := range map[string][]MonsterTemplate{
		"empty": nil,
		"zero":  weighted(0, 0, 0),
	} {
		if _, err := SelectTemplate(templates, fixedRoll(0.5)); !apperrors.HasCode(err, apperrors.CodeNoTemplateAvailable) {
			t.Fatalf("%s: error = %v, want NO_TEMPLATE_AVAILABLE", name, err)
		}
	}
}
