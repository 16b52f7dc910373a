package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound は対象の行が存在しないことを表します。
	ErrNotFound = errors.New("not found")
	// ErrConflict は一意制約違反を表します。
	ErrConflict = errors.New("unique constraint violation")
	// ErrConstraint は一意制約以外の整合性制約違反（外部キー、NOT NULL など）を表します。
	ErrConstraint = errors.New("constraint violation")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// translateError はドライバ固有のエラーをパッケージのセンチネルエラーに変換します。
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation, pgNotNullViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s", ErrConstraint, pgErr.Message)
		}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", ErrConflict, liteErr.Error())
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			// 拡張結果コードが無効な接続でも一意制約違反を判別する
			if strings.Contains(liteErr.Error(), "UNIQUE constraint failed") {
				return fmt.Errorf("%w: %s", ErrConflict, liteErr.Error())
			}
			return fmt.Errorf("%w: %s", ErrConstraint, liteErr.Error())
		}
	}

	return fmt.Errorf("db error: %w", err)
}
