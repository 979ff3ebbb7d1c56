// Package seed loads the default monster template catalog.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"

	"github.com/gatchaworks/arena/internal/services/invocation/domain"
	"github.com/gatchaworks/arena/internal/services/invocation/storage"
)

//go:embed templates.yaml
var defaultTemplates []byte

type templateFile struct {
	Templates []domain.MonsterTemplate `yaml:"templates"`
}

// Parse decodes a YAML template catalog and validates every entry.
func Parse(data []byte) ([]domain.MonsterTemplate, error) {
	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}
	seen := make(map[int]struct{}, len(file.Templates))
	for _, template := range file.Templates {
		if err := template.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[template.ID]; ok {
			return nil, fmt.Errorf("duplicate template id %d", template.ID)
		}
		seen[template.ID] = struct{}{}
	}
	return file.Templates, nil
}

// Defaults returns the embedded template catalog.
func Defaults() ([]domain.MonsterTemplate, error) {
	return Parse(defaultTemplates)
}

// Apply writes templates into an empty store. A store that already holds
// templates is left untouched.
func Apply(ctx context.Context, store storage.TemplateStore, templates []domain.MonsterTemplate) (int, error) {
	if store == nil {
		return 0, fmt.Errorf("template store is required")
	}
	count, err := store.CountTemplates(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	for _, template := range templates {
		if err := store.PutTemplate(ctx, template); err != nil {
			return 0, fmt.Errorf("seed template %d: %w", template.ID, err)
		}
	}
	log.Printf("seeded monster templates count=%d", len(templates))
	return len(templates), nil
}
