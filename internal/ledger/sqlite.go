package ledger

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQL is a ledger backed by a sqlite database.
type SQL struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the database at path and applies
// pending migrations.
func OpenSQLite(path string) (*SQL, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQL{db: db}, nil
}

func (l *SQL) Close() error { return l.db.Close() }

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}
		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Credit opens the account if needed and adds amount to it.
func (l *SQL) Credit(ctx context.Context, identity string, amount int64) error {
	_, err := l.db.ExecContext(ctx, `
        INSERT INTO accounts (identity, coins) VALUES (?, ?)
        ON CONFLICT(identity) DO UPDATE SET coins = coins + excluded.coins, updated_at = datetime('now')`,
		identity, amount,
	)
	return err
}

func (l *SQL) Balance(ctx context.Context, identity string) (int64, error) {
	var coins int64
	err := l.db.QueryRowContext(ctx, `SELECT coins FROM accounts WHERE identity=?`, identity).Scan(&coins)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUnknownAccount
	}
	return coins, err
}

func (l *SQL) CheckBalance(ctx context.Context, identity string, amount int64) Status {
	coins, err := l.Balance(ctx, identity)
	switch {
	case errors.Is(err, ErrUnknownAccount):
		return UserNotFound
	case err != nil:
		log.Warn().Err(err).Str("user", identity).Msg("balance check failed")
		return CheckFailed
	case coins < amount:
		return NotEnough
	default:
		return HasEnough
	}
}

func (l *SQL) Settle(ctx context.Context, s Settlement) error {
	if err := validate(s); err != nil {
		return err
	}
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	apply := func(identity string, delta int64) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE accounts SET coins = coins + ?, updated_at = datetime('now') WHERE identity=?`,
			delta, identity)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n != 1 {
			return ErrUnknownAccount
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO transactions (id, identity, amount, game_type, room_id)
            VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), identity, delta, s.GameType, s.RoomID,
		)
		return err
	}

	for _, loser := range s.Losers {
		if err := apply(loser, -s.Stake); err != nil {
			return fmt.Errorf("debit %s: %w", loser, err)
		}
	}
	if err := apply(s.Winner, s.Stake*int64(len(s.Losers))); err != nil {
		return fmt.Errorf("credit %s: %w", s.Winner, err)
	}
	return tx.Commit()
}
