package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/oklog/ulid/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	open   gorm.Dialector
	db     *gorm.DB
	logger logger.Interface
	// single limits the pool to one connection, sqlite only allows one writer.
	single bool
}

func New(dbType, dbConn string, debug bool) (*Store, error) {
	var open gorm.Dialector
	var single bool
	switch dbType {
	case "postgres":
		open = postgres.Open(dbConn)
	case "mysql":
		open = mysql.Open(dbConn)
	case "sqlite", "local", "":
		if dbConn == "" {
			dbConn = "musicprompt.db"
		}
		open = sqlite.Open(dbConn)
		single = true
	default:
		return nil, fmt.Errorf("storage: unknown db type: %s", dbType)
	}
	l := logger.Default.LogMode(logger.Silent)
	if debug {
		l = logger.Default.LogMode(logger.Warn)
	}
	return &Store{
		open:   open,
		logger: l,
		single: single,
	}, nil
}

func (s *Store) Start(ctx context.Context) error {
	// Launch the database connection in a goroutine so we can timeout if it
	// takes too long.
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	errC := make(chan error, 1)
	go func() {
		db, err := gorm.Open(s.open, &gorm.Config{
			Logger: s.logger,
		})
		if err != nil {
			errC <- fmt.Errorf("storage: failed to open database: %w", err)
			return
		}
		if s.single {
			sqlDB, err := db.DB()
			if err != nil {
				errC <- fmt.Errorf("storage: failed to get sql db: %w", err)
				return
			}
			sqlDB.SetMaxOpenConns(1)
		}
		s.db = db
		errC <- nil
	}()
	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("storage: timed out opening database: %w", ctx.Err())
		}
		return ctx.Err()
	case err := <-errC:
		if err != nil {
			return err
		}
	}
	return nil
}

// Stop closes the underlying connection pool.
func (s *Store) Stop() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("storage: failed to get sql db: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("storage: failed to close database: %w", err)
	}
	return nil
}

func (s *Store) Migrate(ctx context.Context) error {
	init := !s.db.Migrator().HasTable(&Prompt{})

	// Custom migrations
	if err := s.customMigrate(ctx, init); err != nil {
		return err
	}

	// Auto migrations
	if err := s.db.WithContext(ctx).AutoMigrate(
		&Prompt{},
		&User{},
		&Usage{},
		&Notification{},
		&Setting{},
		&Redemption{},
	); err != nil {
		return fmt.Errorf("storage: failed to migrate database: %w", err)
	}
	return nil
}

func (s *Store) customMigrate(ctx context.Context, init bool) error {
	lastVersion := 1
	db := s.db.WithContext(ctx)

	if !db.Migrator().HasTable(&Migration{}) {
		if err := db.Migrator().CreateTable(&Migration{}); err != nil {
			return fmt.Errorf("storage: failed to create table migrations: %w", err)
		}
		var version int
		if init {
			version = lastVersion
		}
		if err := db.Save(&Migration{ID: ulid.Make().String(), Version: version}).Error; err != nil {
			return fmt.Errorf("storage: failed to save migration version: %w", err)
		}
		if init {
			return nil
		}
	}

	// Get the current migration version
	var migration Migration
	if err := db.First(&migration).Error; err != nil {
		return fmt.Errorf("storage: failed to get migration version: %w", err)
	}

	for i := migration.Version + 1; i <= lastVersion; i++ {
		switch i {
		case 1:
			log.Println("storage: migration 1: rename prompt text column")
			if db.Migrator().HasColumn(&Prompt{}, "prompt") {
				if err := db.Migrator().RenameColumn(&Prompt{}, "prompt", "text"); err != nil {
					return fmt.Errorf("storage: migration %d: %w", i, err)
				}
			}
		}
		migration.Version = i
		if err := db.Save(&migration).Error; err != nil {
			return fmt.Errorf("storage: failed to save migration version: %w", err)
		}
	}
	return nil
}

type Filter struct {
	Query interface{}
	Args  []interface{}
}

func Where(query interface{}, args ...interface{}) Filter {
	return Filter{
		Query: query,
		Args:  args,
	}
}

// NewID returns a new sortable record id.
func NewID() string {
	return ulid.Make().String()
}

func paginate(q *gorm.DB, page, size int, orderBy string, filter []Filter) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if size > 0 {
		q = q.Offset((page - 1) * size).Limit(size)
	}
	for _, f := range filter {
		q = q.Where(f.Query, f.Args...)
	}
	if orderBy != "" {
		q = q.Order(orderBy)
	}
	return q
}

func update(ctx context.Context, db *gorm.DB, model any, name, id string, fields map[string]any) error {
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("storage: failed to update %s %s: %w", name, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
