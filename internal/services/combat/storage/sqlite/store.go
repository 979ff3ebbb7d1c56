package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gatchaworks/arena/internal/platform/filter"
	"github.com/gatchaworks/arena/internal/platform/storage/sqlitedb"
	"github.com/gatchaworks/arena/internal/services/combat/domain"
	"github.com/gatchaworks/arena/internal/services/combat/storage"
	"github.com/gatchaworks/arena/internal/services/combat/storage/sqlite/migrations"
)

// Store provides SQLite-backed combat history.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a combat SQLite store and applies migrations.
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

const combatColumns = `
	id,
	initiator_username,
	monster1_json,
	monster2_json,
	logs_json,
	winner_id,
	winner_username,
	total_turns,
	status,
	created_at`

// PutCombat stores one completed combat.
func (s *Store) PutCombat(ctx context.Context, combat domain.Combat) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	combat.ID = strings.TrimSpace(combat.ID)
	if combat.ID == "" {
		return fmt.Errorf("combat id is required")
	}
	if strings.TrimSpace(combat.InitiatorUsername) == "" {
		return fmt.Errorf("initiator username is required")
	}
	if combat.CreatedAt.IsZero() {
		combat.CreatedAt = time.Now().UTC()
	}

	monster1JSON, err := json.Marshal(combat.Monster1)
	if err != nil {
		return fmt.Errorf("encode monster1: %w", err)
	}
	monster2JSON, err := json.Marshal(combat.Monster2)
	if err != nil {
		return fmt.Errorf("encode monster2: %w", err)
	}
	logs := combat.Logs
	if logs == nil {
		logs = []domain.TurnLog{}
	}
	logsJSON, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("encode logs: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO combats (
	id,
	initiator_username,
	monster1_id,
	monster2_id,
	monster1_json,
	monster2_json,
	logs_json,
	winner_id,
	winner_username,
	total_turns,
	status,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	logs_json = excluded.logs_json,
	winner_id = excluded.winner_id,
	winner_username = excluded.winner_username,
	total_turns = excluded.total_turns,
	status = excluded.status
`,
		combat.ID,
		combat.InitiatorUsername,
		combat.Monster1.ID,
		combat.Monster2.ID,
		string(monster1JSON),
		string(monster2JSON),
		string(logsJSON),
		combat.WinnerID,
		combat.WinnerUsername,
		combat.TotalTurns,
		string(combat.Status),
		combat.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put combat: %w", err)
	}
	return nil
}

// GetCombat loads one combat with its full log.
func (s *Store) GetCombat(ctx context.Context, id string) (domain.Combat, error) {
	if err := s.check(ctx); err != nil {
		return domain.Combat{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+combatColumns+` FROM combats WHERE id = ?`, strings.TrimSpace(id))
	combat, err := scanCombat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Combat{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Combat{}, fmt.Errorf("get combat: %w", err)
	}
	return combat, nil
}

// ListCombats lists combats matching cond newest first.
func (s *Store) ListCombats(ctx context.Context, cond filter.SQLCondition, page storage.Page) (storage.CombatPage, error) {
	if err := s.check(ctx); err != nil {
		return storage.CombatPage{}, err
	}
	return s.list(ctx, cond, page)
}

// ListCombatsByInitiator lists combats username started that match cond,
// newest first.
func (s *Store) ListCombatsByInitiator(ctx context.Context, username string, cond filter.SQLCondition, page storage.Page) (storage.CombatPage, error) {
	if err := s.check(ctx); err != nil {
		return storage.CombatPage{}, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return storage.CombatPage{}, fmt.Errorf("username is required")
	}
	initiator := filter.SQLCondition{Clause: "initiator_username = ?", Params: []any{username}}
	return s.list(ctx, initiator.And(cond), page)
}

func (s *Store) list(ctx context.Context, cond filter.SQLCondition, page storage.Page) (storage.CombatPage, error) {
	if page.Size <= 0 {
		return storage.CombatPage{}, fmt.Errorf("page size must be positive")
	}
	if page.Offset < 0 {
		page.Offset = 0
	}

	query := `SELECT ` + combatColumns + ` FROM combats`
	params := make([]any, 0, len(cond.Params)+2)
	if !cond.Empty() {
		query += ` WHERE ` + cond.Clause
		params = append(params, cond.Params...)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	params = append(params, page.Size+1, page.Offset)

	rows, err := s.sqlDB.QueryContext(ctx, query, params...)
	if err != nil {
		return storage.CombatPage{}, fmt.Errorf("list combats: %w", err)
	}
	defer rows.Close()

	combats := make([]domain.Combat, 0, page.Size)
	for rows.Next() {
		combat, err := scanCombat(rows)
		if err != nil {
			return storage.CombatPage{}, fmt.Errorf("scan combat: %w", err)
		}
		combats = append(combats, combat)
	}
	if err := rows.Err(); err != nil {
		return storage.CombatPage{}, fmt.Errorf("iterate combats: %w", err)
	}

	result := storage.CombatPage{Combats: combats}
	if len(combats) > page.Size {
		result.Combats = combats[:page.Size]
		result.NextOffset = page.Offset + page.Size
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCombat(row rowScanner) (domain.Combat, error) {
	var (
		combat       domain.Combat
		monster1JSON string
		monster2JSON string
		logsJSON     string
		status       string
		createdAt    int64
	)
	if err := row.Scan(
		&combat.ID,
		&combat.InitiatorUsername,
		&monster1JSON,
		&monster2JSON,
		&logsJSON,
		&combat.WinnerID,
		&combat.WinnerUsername,
		&combat.TotalTurns,
		&status,
		&createdAt,
	); err != nil {
		return domain.Combat{}, err
	}
	if err := json.Unmarshal([]byte(monster1JSON), &combat.Monster1); err != nil {
		return domain.Combat{}, fmt.Errorf("decode combat %s monster1: %w", combat.ID, err)
	}
	if err := json.Unmarshal([]byte(monster2JSON), &combat.Monster2); err != nil {
		return domain.Combat{}, fmt.Errorf("decode combat %s monster2: %w", combat.ID, err)
	}
	if err := json.Unmarshal([]byte(logsJSON), &combat.Logs); err != nil {
		return domain.Combat{}, fmt.Errorf("decode combat %s logs: %w", combat.ID, err)
	}
	combat.Status = domain.Status(status)
	combat.CreatedAt = time.UnixMilli(createdAt).UTC()
	return combat, nil
}

var _ storage.CombatStore = (*Store)(nil)
