// Package uow scopes a group of statements to one database transaction.
package uow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"
)

// ErrFinished is returned when Commit or Rollback is called on a unit that already ended.
var ErrFinished = errors.New("unit of work already finished")

// Unit is a single transaction. Exactly one of Commit or Rollback ends it; Release must
// follow in every case and is safe to call more than once.
type Unit interface {
	Tx() *gorm.DB
	Commit() error
	Rollback() error
	Release()
}

// Factory begins units of work.
type Factory interface {
	Begin(ctx context.Context) (Unit, error)
}

type GormFactory struct {
	db     *gorm.DB
	opts   *sql.TxOptions
	logger *slog.Logger
}

func NewGormFactory(db *gorm.DB, isolation sql.IsolationLevel, logger *slog.Logger) *GormFactory {
	f := &GormFactory{db: db, logger: logger}
	if isolation != sql.LevelDefault {
		f.opts = &sql.TxOptions{Isolation: isolation}
	}
	return f
}

func (f *GormFactory) Begin(ctx context.Context) (Unit, error) {
	var tx *gorm.DB
	if f.opts != nil {
		tx = f.db.WithContext(ctx).Begin(f.opts)
	} else {
		tx = f.db.WithContext(ctx).Begin()
	}
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	return &gormUnit{tx: tx, logger: f.logger}, nil
}

type gormUnit struct {
	tx       *gorm.DB
	finished bool
	released bool
	logger   *slog.Logger
}

func (u *gormUnit) Tx() *gorm.DB {
	return u.tx
}

func (u *gormUnit) Commit() error {
	if u.finished {
		return ErrFinished
	}
	u.finished = true
	return u.tx.Commit().Error
}

func (u *gormUnit) Rollback() error {
	if u.finished {
		return ErrFinished
	}
	u.finished = true
	return u.tx.Rollback().Error
}

// Release rolls back a unit that was never ended so its connection returns to the pool.
func (u *gormUnit) Release() {
	if u.released {
		return
	}
	u.released = true
	if !u.finished {
		u.logger.Warn("releasing unfinished unit of work, rolling back")
		if err := u.Rollback(); err != nil {
			u.logger.Error("rollback on release", "err", err)
		}
	}
}

// Do runs fn in one unit of work. A non-nil error from fn rolls the unit back and is
// returned as is; otherwise the unit is committed. Release always runs last.
func Do(ctx context.Context, f Factory, fn func(tx *gorm.DB) error) (err error) {
	u, err := f.Begin(ctx)
	if err != nil {
		return err
	}
	defer u.Release()

	defer func() {
		if p := recover(); p != nil {
			_ = u.Rollback()
			panic(p)
		}
	}()

	if err := fn(u.Tx()); err != nil {
		if rbErr := u.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := u.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ParseIsolation maps a DB_ISOLATION value to a driver isolation level.
func ParseIsolation(s string) (sql.IsolationLevel, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "_")) {
	case "", "default":
		return sql.LevelDefault, nil
	case "read_committed":
		return sql.LevelReadCommitted, nil
	case "repeatable_read":
		return sql.LevelRepeatableRead, nil
	case "serializable":
		return sql.LevelSerializable, nil
	default:
		return sql.LevelDefault, fmt.Errorf("unknown isolation level %q", s)
	}
}
