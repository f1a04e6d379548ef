package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"swiss/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"gopkg.in/guregu/null.v4"
)

// Supported database/sql drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

var _ Store = (*SQL)(nil)

// SQL is a Store backed by a relational database. Every method runs in its
// own transaction.
type SQL struct {
	db *sqlx.DB
	sq squirrel.StatementBuilderType
}

// Open migrates the schema to its latest version and connects to the
// database. For sqlite3 the DSN is a file path, for postgres it must be an URL.
func Open(driver, dsn string) (*SQL, error) {
	if err := Migrate(driver, dsn); err != nil {
		return nil, err
	}

	switch driver {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverPostgres:
		// the URL is used as is
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	log.Debug("connected to database", "driver", driver)

	return &SQL{
		db: db,
		sq: sqBuilder(driver),
	}, nil
}

func sqBuilder(driver string) squirrel.StatementBuilderType {
	if driver == DriverPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}

	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// sqliteDSN turns on foreign keys, SQLite leaves them off by default.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}

	return path + "?_foreign_keys=on"
}

func (s *SQL) Close() error {
	return s.db.Close()
}

func (s *SQL) transaction(ctx context.Context, cb util.TransactionCallback) error {
	return translateError(util.Transaction(ctx, s.db, cb))
}

func (s *SQL) ClearMatches(ctx context.Context) error {
	return s.transaction(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM matches`)
		return err
	})
}

func (s *SQL) ClearPlayers(ctx context.Context) error {
	return s.transaction(ctx, func(tx *sqlx.Tx) error {
		// Explicit so we do not rely on the cascade being enabled.
		if _, err := tx.ExecContext(ctx, `DELETE FROM matches`); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `DELETE FROM players`)
		return err
	})
}

func (s *SQL) CountPlayers(ctx context.Context) (count int, _ error) {
	if err := s.transaction(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM players`)
	}); err != nil {
		return 0, err
	}

	return count, nil
}

func (s *SQL) RegisterPlayer(ctx context.Context, name string) (Player, error) {
	player := Player{
		CreatedAt: util.NewTimeAsTimestamp(time.Now()),
		Name:      name,
	}

	if err := s.transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := s.sq.Insert("players").SetMap(squirrel.Eq{
			"created_at": player.CreatedAt,
			"name":       player.Name,
		}).Suffix("RETURNING id").ToSql()
		if err != nil {
			return err
		}

		return tx.QueryRowxContext(ctx, query, args...).Scan(&player.ID)
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}

func (s *SQL) ListPlayersWithStats(ctx context.Context) ([]PlayerStats, error) {
	type row struct {
		PlayerStats
		LastPlayed null.Int `db:"last_played"`
	}

	var rows []row
	if err := s.transaction(ctx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &rows, `
            SELECT
                players.id AS id,
                players.name AS name,
                COALESCE(SUM(CASE WHEN matches.winner_id = players.id THEN 1 ELSE 0 END), 0) AS wins,
                COUNT(matches.id) AS matches,
                MAX(matches.created_at) AS last_played
            FROM players
            LEFT JOIN matches ON (matches.winner_id = players.id OR matches.loser_id = players.id)
            GROUP BY players.id, players.name
            ORDER BY players.id ASC`,
		)
	}); err != nil {
		return nil, err
	}

	ret := make([]PlayerStats, len(rows))
	for k := range rows {
		ret[k] = rows[k].PlayerStats
		if rows[k].LastPlayed.Valid {
			ret[k].LastPlayedAt = null.TimeFrom(time.Unix(rows[k].LastPlayed.Int64, 0))
		}
	}

	return ret, nil
}

func (s *SQL) RecordMatch(ctx context.Context, match *Match) error {
	if match.Ref.IsZero() {
		match.Ref = util.NewUUIDAsBlob()
	}
	if match.CreatedAt.Time().IsZero() {
		match.CreatedAt = util.NewTimeAsTimestamp(time.Now())
	}

	return s.transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := s.sq.Insert("matches").SetMap(squirrel.Eq{
			"ref":        match.Ref,
			"created_at": match.CreatedAt,
			"winner_id":  match.WinnerID,
			"loser_id":   match.LoserID,
		}).Suffix("RETURNING id").ToSql()
		if err != nil {
			return err
		}

		return tx.QueryRowxContext(ctx, query, args...).Scan(&match.ID)
	})
}

func (s *SQL) HasPlayed(ctx context.Context, a, b int64) (bool, error) {
	var count int
	if err := s.transaction(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &count, tx.Rebind(`
            SELECT COUNT(*) FROM matches
            WHERE (winner_id = ? AND loser_id = ?)
               OR (winner_id = ? AND loser_id = ?)`),
			a, b, b, a,
		)
	}); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s *SQL) ListMatches(ctx context.Context) (matches []Match, _ error) {
	if err := s.transaction(ctx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &matches, `
            SELECT id, ref, created_at, winner_id, loser_id
            FROM matches ORDER BY id ASC`,
		)
	}); err != nil {
		return nil, err
	}

	return matches, nil
}

// translateError maps driver-specific constraint violations to the package
// sentinel errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, err)
		case sqlite3.ErrConstraintUnique:
			return fmt.Errorf("%w: %s", ErrDuplicateMatch, err)
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, err)
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", ErrDuplicateMatch, err)
		}
	}

	return err
}
