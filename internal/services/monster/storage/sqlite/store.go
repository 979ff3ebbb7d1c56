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
	"github.com/gatchaworks/arena/internal/services/monster/domain"
	"github.com/gatchaworks/arena/internal/services/monster/storage"
	"github.com/gatchaworks/arena/internal/services/monster/storage/sqlite/migrations"
	"github.com/gatchaworks/arena/internal/services/shared/stats"
)

// Store provides SQLite-backed monster persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a monster SQLite store and applies migrations.
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

type skillRecord struct {
	Num      int         `json:"num"`
	Dmg      int         `json:"dmg"`
	Ratio    stats.Ratio `json:"ratio"`
	Cooldown int         `json:"cooldown"`
	Lvl      int         `json:"lvl"`
	LvlMax   int         `json:"lvl_max"`
}

const monsterColumns = `
	id,
	template_id,
	owner_username,
	element,
	hp,
	atk,
	def,
	vit,
	level,
	experience,
	experience_to_next_level,
	skill_points,
	skills_json,
	created_at,
	updated_at`

// PutMonster inserts or replaces one monster.
func (s *Store) PutMonster(ctx context.Context, monster domain.Monster) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	monster.ID = strings.TrimSpace(monster.ID)
	monster.OwnerUsername = strings.TrimSpace(monster.OwnerUsername)
	if monster.ID == "" {
		return fmt.Errorf("monster id is required")
	}
	if monster.OwnerUsername == "" {
		return fmt.Errorf("owner username is required")
	}
	if monster.CreatedAt.IsZero() {
		monster.CreatedAt = time.Now().UTC()
	}
	if monster.UpdatedAt.IsZero() {
		monster.UpdatedAt = monster.CreatedAt
	}

	records := make([]skillRecord, 0, len(monster.Skills))
	for _, skill := range monster.Skills {
		records = append(records, skillRecord(skill))
	}
	skillsJSON, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO monsters (`+monsterColumns+`
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	owner_username = excluded.owner_username,
	hp = excluded.hp,
	atk = excluded.atk,
	def = excluded.def,
	vit = excluded.vit,
	level = excluded.level,
	experience = excluded.experience,
	experience_to_next_level = excluded.experience_to_next_level,
	skill_points = excluded.skill_points,
	skills_json = excluded.skills_json,
	updated_at = excluded.updated_at
`,
		monster.ID,
		monster.TemplateID,
		monster.OwnerUsername,
		string(monster.Element),
		monster.Stats.HP,
		monster.Stats.ATK,
		monster.Stats.DEF,
		monster.Stats.VIT,
		monster.Level,
		monster.Experience,
		monster.ExperienceToNextLevel,
		monster.SkillPoints,
		string(skillsJSON),
		monster.CreatedAt.UTC().UnixMilli(),
		monster.UpdatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put monster: %w", err)
	}
	return nil
}

// GetMonster loads one monster by id.
func (s *Store) GetMonster(ctx context.Context, id string) (domain.Monster, error) {
	if err := ctx.Err(); err != nil {
		return domain.Monster{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Monster{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Monster{}, fmt.Errorf("monster id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+monsterColumns+` FROM monsters WHERE id = ?`, id)
	monster, err := scanMonster(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Monster{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Monster{}, fmt.Errorf("get monster: %w", err)
	}
	return monster, nil
}

// ListMonstersByOwner lists an owner's monsters oldest first.
func (s *Store) ListMonstersByOwner(ctx context.Context, owner string) ([]domain.Monster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, fmt.Errorf("owner username is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT `+monsterColumns+`
FROM monsters
WHERE owner_username = ?
ORDER BY created_at, id
`, owner)
	if err != nil {
		return nil, fmt.Errorf("list monsters: %w", err)
	}
	return collectMonsters(rows)
}

// ListMonstersByIDs returns owner's monsters among ids. Unknown or foreign
// ids are silently skipped.
func (s *Store) ListMonstersByIDs(ctx context.Context, owner string, ids []string) ([]domain.Monster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, fmt.Errorf("owner username is required")
	}
	if len(ids) == 0 {
		return []domain.Monster{}, nil
	}

	placeholders := make([]string, 0, len(ids))
	params := make([]any, 0, len(ids)+1)
	params = append(params, owner)
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		params = append(params, strings.TrimSpace(id))
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT `+monsterColumns+`
FROM monsters
WHERE owner_username = ? AND id IN (`+strings.Join(placeholders, ", ")+`)
ORDER BY created_at, id
`, params...)
	if err != nil {
		return nil, fmt.Errorf("list monsters by ids: %w", err)
	}
	return collectMonsters(rows)
}

// DeleteMonster removes one monster.
func (s *Store) DeleteMonster(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM monsters WHERE id = ?`, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete monster: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete monster rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMonster(row rowScanner) (domain.Monster, error) {
	var (
		monster    domain.Monster
		element    string
		skillsJSON string
		createdAt  int64
		updatedAt  int64
	)
	if err := row.Scan(
		&monster.ID,
		&monster.TemplateID,
		&monster.OwnerUsername,
		&element,
		&monster.Stats.HP,
		&monster.Stats.ATK,
		&monster.Stats.DEF,
		&monster.Stats.VIT,
		&monster.Level,
		&monster.Experience,
		&monster.ExperienceToNextLevel,
		&monster.SkillPoints,
		&skillsJSON,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Monster{}, err
	}
	var records []skillRecord
	if err := json.Unmarshal([]byte(skillsJSON), &records); err != nil {
		return domain.Monster{}, fmt.Errorf("decode skills for %s: %w", monster.ID, err)
	}
	monster.Skills = make([]domain.Skill, 0, len(records))
	for _, record := range records {
		monster.Skills = append(monster.Skills, domain.Skill(record))
	}
	monster.Element = stats.Element(element)
	monster.CreatedAt = time.UnixMilli(createdAt).UTC()
	monster.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return monster, nil
}

func collectMonsters(rows *sql.Rows) ([]domain.Monster, error) {
	defer rows.Close()
	monsters := make([]domain.Monster, 0)
	for rows.Next() {
		monster, err := scanMonster(rows)
		if err != nil {
			return nil, fmt.Errorf("scan monster: %w", err)
		}
		monsters = append(monsters, monster)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monsters: %w", err)
	}
	return monsters, nil
}

var _ storage.MonsterStore = (*Store)(nil)
