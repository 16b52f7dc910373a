// Package store はユーザーとレシピの永続化を提供します。
// SQLite（modernc.org/sqlite）と PostgreSQL（pgx）の両方に対応し、
// スキーマは goose の埋め込みマイグレーションで適用します。
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx sql.DB driver initialization
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

//go:embed migrations
var migrations embed.FS

var registerSQLiteHook sync.Once

// Open はデータベース接続を開き、スキーマを最新状態へマイグレーションします。
// sqlite の場合、dsn が ":memory:" 以外で親ディレクトリが無ければ作成します。
func Open(ctx context.Context, logger *slog.Logger, driver, dsn string) (*sql.DB, error) {
	var dialect, dir string
	switch driver {
	case DriverSQLite:
		if dsn != ":memory:" {
			if _, err := os.Stat(dsn); err != nil {
				const userOnlyDirPerms = 0o700
				if err := os.MkdirAll(filepath.Dir(dsn), userOnlyDirPerms); err != nil {
					return nil, fmt.Errorf("failed to create db parent directory: %w", err)
				}
			}
		}
		registerSQLiteHook.Do(func() {
			// ON DELETE CASCADE のため接続ごとに外部キー制約を有効化する
			sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, _ string) error {
				_, err := conn.ExecContext(context.Background(), "pragma foreign_keys = on;", nil)
				return err
			})
		})
		dialect, dir = "sqlite3", "migrations/sqlite"
	case DriverPostgres:
		dialect, dir = "postgres", "migrations/postgres"
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	handle, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB handler: %w", err)
	}
	if driver == DriverSQLite {
		// 単一接続にして書き込みを直列化し、:memory: の DB を接続間で共有する
		handle.SetMaxOpenConns(1)
	}
	if err := handle.PingContext(ctx); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("db_driver", driver))
	goose.SetLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(dialect); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, handle, dir); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return handle, nil
}
