package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gatchaworks/arena/internal/platform/storage/sqlitedb"
	"github.com/gatchaworks/arena/internal/services/player/domain"
	"github.com/gatchaworks/arena/internal/services/player/storage"
	"github.com/gatchaworks/arena/internal/services/player/storage/sqlite/migrations"
)

// Store provides SQLite-backed player persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a player SQLite store and applies migrations.
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

// CreatePlayer inserts a new player.
func (s *Store) CreatePlayer(ctx context.Context, player domain.Player) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	player.Username = strings.TrimSpace(player.Username)
	if player.Username == "" {
		return fmt.Errorf("username is required")
	}
	stamp(&player)

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create player: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
INSERT INTO players (username, level, experience, experience_step, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(username) DO NOTHING
`,
		player.Username,
		player.Level,
		player.Experience,
		player.ExperienceStep,
		player.CreatedAt.UTC().UnixMilli(),
		player.UpdatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("create player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("create player rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrAlreadyExists
	}
	if err := replaceMonsters(ctx, tx, player); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create player: %w", err)
	}
	return nil
}

// GetPlayer loads a player with their inventory in insertion order.
func (s *Store) GetPlayer(ctx context.Context, username string) (domain.Player, error) {
	if err := s.check(ctx); err != nil {
		return domain.Player{}, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Player{}, fmt.Errorf("username is required")
	}

	var (
		player    domain.Player
		createdAt int64
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT username, level, experience, experience_step, created_at, updated_at
FROM players
WHERE username = ?
`, username).Scan(
		&player.Username,
		&player.Level,
		&player.Experience,
		&player.ExperienceStep,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Player{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Player{}, fmt.Errorf("get player: %w", err)
	}
	player.CreatedAt = time.UnixMilli(createdAt).UTC()
	player.UpdatedAt = time.UnixMilli(updatedAt).UTC()

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT monster_id FROM player_monsters WHERE username = ? ORDER BY position
`, username)
	if err != nil {
		return domain.Player{}, fmt.Errorf("list player monsters: %w", err)
	}
	defer rows.Close()
	player.MonsterIDs = []string{}
	for rows.Next() {
		var monsterID string
		if err := rows.Scan(&monsterID); err != nil {
			return domain.Player{}, fmt.Errorf("scan player monster: %w", err)
		}
		player.MonsterIDs = append(player.MonsterIDs, monsterID)
	}
	if err := rows.Err(); err != nil {
		return domain.Player{}, fmt.Errorf("iterate player monsters: %w", err)
	}
	return player, nil
}

// ListPlayers lists every player ordered by username. Inventories are left
// empty; callers that need them load the player directly.
func (s *Store) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT username, level, experience, experience_step, created_at, updated_at
FROM players
ORDER BY username
`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := make([]domain.Player, 0)
	for rows.Next() {
		var (
			player    domain.Player
			createdAt int64
			updatedAt int64
		)
		if err := rows.Scan(
			&player.Username,
			&player.Level,
			&player.Experience,
			&player.ExperienceStep,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		player.CreatedAt = time.UnixMilli(createdAt).UTC()
		player.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		player.MonsterIDs = []string{}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

// UpdatePlayer replaces an existing player's progression and inventory.
func (s *Store) UpdatePlayer(ctx context.Context, player domain.Player) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	player.Username = strings.TrimSpace(player.Username)
	if player.Username == "" {
		return fmt.Errorf("username is required")
	}
	stamp(&player)

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update player: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
UPDATE players
SET level = ?, experience = ?, experience_step = ?, updated_at = ?
WHERE username = ?
`,
		player.Level,
		player.Experience,
		player.ExperienceStep,
		player.UpdatedAt.UTC().UnixMilli(),
		player.Username,
	)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	if err := replaceMonsters(ctx, tx, player); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update player: %w", err)
	}
	return nil
}

func replaceMonsters(ctx context.Context, tx *sql.Tx, player domain.Player) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM player_monsters WHERE username = ?`, player.Username); err != nil {
		return fmt.Errorf("clear player monsters: %w", err)
	}
	for position, monsterID := range player.MonsterIDs {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO player_monsters (username, monster_id, position) VALUES (?, ?, ?)
`, player.Username, monsterID, position); err != nil {
			return fmt.Errorf("insert player monster: %w", err)
		}
	}
	return nil
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

func stamp(player *domain.Player) {
	if player.CreatedAt.IsZero() {
		player.CreatedAt = time.Now().UTC()
	}
	if player.UpdatedAt.IsZero() {
		player.UpdatedAt = player.CreatedAt
	}
}

var _ storage.PlayerStore = (*Store)(nil)
