package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gatchaworks/arena/internal/platform/storage/sqlitedb"
	"github.com/gatchaworks/arena/internal/services/invocation/domain"
	"github.com/gatchaworks/arena/internal/services/invocation/storage"
	"github.com/gatchaworks/arena/internal/services/invocation/storage/sqlite/migrations"
	"github.com/gatchaworks/arena/internal/services/shared/stats"
)

// Store provides SQLite-backed invocation and template persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens an invocation SQLite store and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	sqlDB, err := sqlitedb.Open(ctx, path, migrations.FS)
	if err != nil {
		return nil, err
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

const invocationColumns = `
	id,
	username,
	template_id,
	monster_id,
	status,
	error_message,
	retry_count,
	created_at,
	updated_at`

// PutInvocation inserts or replaces one invocation.
func (s *Store) PutInvocation(ctx context.Context, invocation domain.Invocation) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	invocation.ID = strings.TrimSpace(invocation.ID)
	invocation.Username = strings.TrimSpace(invocation.Username)
	if invocation.ID == "" {
		return fmt.Errorf("invocation id is required")
	}
	if invocation.Username == "" {
		return fmt.Errorf("username is required")
	}
	if invocation.Status == "" {
		return fmt.Errorf("status is required")
	}
	if invocation.CreatedAt.IsZero() {
		invocation.CreatedAt = time.Now().UTC()
	}
	if invocation.UpdatedAt.IsZero() {
		invocation.UpdatedAt = invocation.CreatedAt
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO invocations (`+invocationColumns+`
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	monster_id = excluded.monster_id,
	status = excluded.status,
	error_message = excluded.error_message,
	retry_count = excluded.retry_count,
	updated_at = excluded.updated_at
`,
		invocation.ID,
		invocation.Username,
		invocation.TemplateID,
		invocation.MonsterID,
		string(invocation.Status),
		invocation.ErrorMessage,
		invocation.RetryCount,
		invocation.CreatedAt.UTC().UnixMilli(),
		invocation.UpdatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put invocation: %w", err)
	}
	return nil
}

// GetInvocation loads one invocation.
func (s *Store) GetInvocation(ctx context.Context, id string) (domain.Invocation, error) {
	if err := s.check(ctx); err != nil {
		return domain.Invocation{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+invocationColumns+` FROM invocations WHERE id = ?`, strings.TrimSpace(id))
	invocation, err := scanInvocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Invocation{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Invocation{}, fmt.Errorf("get invocation: %w", err)
	}
	return invocation, nil
}

// ListInvocationsByUsername lists a player's invocations newest first.
func (s *Store) ListInvocationsByUsername(ctx context.Context, username string) ([]domain.Invocation, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT `+invocationColumns+`
FROM invocations
WHERE username = ?
ORDER BY created_at DESC, id DESC
`, username)
	if err != nil {
		return nil, fmt.Errorf("list invocations: %w", err)
	}
	return collectInvocations(rows)
}

// ListInvocationsByStatus lists invocations in any of statuses oldest first.
func (s *Store) ListInvocationsByStatus(ctx context.Context, statuses []domain.Status) ([]domain.Invocation, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return []domain.Invocation{}, nil
	}
	placeholders := make([]string, 0, len(statuses))
	params := make([]any, 0, len(statuses))
	for _, status := range statuses {
		placeholders = append(placeholders, "?")
		params = append(params, string(status))
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT `+invocationColumns+`
FROM invocations
WHERE status IN (`+strings.Join(placeholders, ", ")+`)
ORDER BY created_at, id
`, params...)
	if err != nil {
		return nil, fmt.Errorf("list invocations by status: %w", err)
	}
	return collectInvocations(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvocation(row rowScanner) (domain.Invocation, error) {
	var (
		invocation domain.Invocation
		status     string
		createdAt  int64
		updatedAt  int64
	)
	if err := row.Scan(
		&invocation.ID,
		&invocation.Username,
		&invocation.TemplateID,
		&invocation.MonsterID,
		&status,
		&invocation.ErrorMessage,
		&invocation.RetryCount,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Invocation{}, err
	}
	invocation.Status = domain.Status(status)
	invocation.CreatedAt = time.UnixMilli(createdAt).UTC()
	invocation.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return invocation, nil
}

func collectInvocations(rows *sql.Rows) ([]domain.Invocation, error) {
	defer rows.Close()
	invocations := make([]domain.Invocation, 0)
	for rows.Next() {
		invocation, err := scanInvocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		invocations = append(invocations, invocation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invocations: %w", err)
	}
	return invocations, nil
}

// PutTemplate inserts or replaces one template.
func (s *Store) PutTemplate(ctx context.Context, template domain.MonsterTemplate) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if err := template.Validate(); err != nil {
		return err
	}
	skillsJSON, err := json.Marshal(template.Skills)
	if err != nil {
		return fmt.Errorf("encode template skills: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO monster_templates (id, element, hp, atk, def, vit, skills_json, loot_rate)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	element = excluded.element,
	hp = excluded.hp,
	atk = excluded.atk,
	def = excluded.def,
	vit = excluded.vit,
	skills_json = excluded.skills_json,
	loot_rate = excluded.loot_rate
`,
		template.ID,
		strings.ToUpper(string(template.Element)),
		template.Stats.HP,
		template.Stats.ATK,
		template.Stats.DEF,
		template.Stats.VIT,
		string(skillsJSON),
		template.LootRate,
	)
	if err != nil {
		return fmt.Errorf("put template: %w", err)
	}
	return nil
}

// GetTemplate loads one template.
func (s *Store) GetTemplate(ctx context.Context, id int) (domain.MonsterTemplate, error) {
	if err := s.check(ctx); err != nil {
		return domain.MonsterTemplate{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, element, hp, atk, def, vit, skills_json, loot_rate
FROM monster_templates
WHERE id = ?
`, id)
	template, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MonsterTemplate{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.MonsterTemplate{}, fmt.Errorf("get template: %w", err)
	}
	return template, nil
}

// ListTemplates lists every template ordered by id.
func (s *Store) ListTemplates(ctx context.Context) ([]domain.MonsterTemplate, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, element, hp, atk, def, vit, skills_json, loot_rate
FROM monster_templates
ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]domain.MonsterTemplate, 0)
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return templates, nil
}

// CountTemplates reports how many templates are stored.
func (s *Store) CountTemplates(ctx context.Context) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM monster_templates`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return count, nil
}

func scanTemplate(row rowScanner) (domain.MonsterTemplate, error) {
	var (
		template   domain.MonsterTemplate
		element    string
		skillsJSON string
	)
	if err := row.Scan(
		&template.ID,
		&element,
		&template.Stats.HP,
		&template.Stats.ATK,
		&template.Stats.DEF,
		&template.Stats.VIT,
		&skillsJSON,
		&template.LootRate,
	); err != nil {
		return domain.MonsterTemplate{}, err
	}
	template.Element = stats.Element(element)
	if err := json.Unmarshal([]byte(skillsJSON), &template.Skills); err != nil {
		return domain.MonsterTemplate{}, fmt.Errorf("decode template %d skills: %w", template.ID, err)
	}
	return template, nil
}

var (
	_ storage.InvocationStore = (*Store)(nil)
	_ storage.TemplateStore   = (*Store)(nil)
)
