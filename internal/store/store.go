package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// PostgreSQL driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the database backend.
type Config struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string `mapstructure:"driver"`

	// DSN is a file path or sqlite URI for sqlite, or a postgres URL.
	DSN string `mapstructure:"dsn"`
}

// Store holds the database handle and provides access to repositories.
type Store struct {
	db      *sql.DB
	drv     *entsql.Driver
	dialect string
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string) (*Store, error) {
	return OpenWith(context.Background(), Config{Driver: DriverSQLite, DSN: dsn})
}

// OpenWith connects to the configured backend and runs auto-migration.
func OpenWith(ctx context.Context, cfg Config) (*Store, error) {
	var (
		driverName string
		dsn        = cfg.DSN
		dia        string
	)
	switch cfg.Driver {
	case "", DriverSQLite:
		driverName, dia = "sqlite", dialect.SQLite
		dsn = withPragmas(dsn)
	case DriverPostgres:
		driverName, dia = "pgx", dialect.Postgres
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	drv := entsql.OpenDB(dia, db)
	if err := migrate(ctx, drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, drv: drv, dialect: dia}, nil
}

// migrate creates or updates every table the repositories use.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, Tables...)
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the ent dialect name of the backend.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

func (s *Store) table(name string, keys ...string) docTable {
	return docTable{db: s.db, dialect: s.dialect, name: name, keys: keys}
}

// ResumeRepo returns a ResumeRepo backed by this store.
func (s *Store) ResumeRepo() ResumeRepo {
	return &resumeRepo{t: s.table(ResumesTable.Name, ColUserID)}
}

// SkillProfileRepo returns a SkillProfileRepo backed by this store.
func (s *Store) SkillProfileRepo() SkillProfileRepo {
	return &skillProfileRepo{t: s.table(SkillProfilesTable.Name, ColUserID)}
}

// LearningPathRepo returns a LearningPathRepo backed by this store.
func (s *Store) LearningPathRepo() LearningPathRepo {
	return &learningPathRepo{t: s.table(LearningPathsTable.Name, ColUserID)}
}

// RoadmapRepo returns a RoadmapRepo backed by this store.
func (s *Store) RoadmapRepo() RoadmapRepo {
	return &roadmapRepo{t: s.table(CareerRoadmapsTable.Name, ColUserID, ColTargetRole)}
}

// QuizRepo returns a QuizRepo backed by this store.
func (s *Store) QuizRepo() QuizRepo {
	return &quizRepo{t: s.table(QuizResultsTable.Name, ColQuizID)}
}

// ProgressRepo returns a ProgressRepo backed by this store.
func (s *Store) ProgressRepo() ProgressRepo {
	return &progressRepo{t: s.table(ProgressSignalsTable.Name, ColUserID)}
}

// ConversationRepo returns a ConversationRepo backed by this store.
func (s *Store) ConversationRepo() ConversationRepo {
	return &conversationRepo{t: s.table(ConversationLogsTable.Name, ColUserID)}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, dialect: s.dialect}
}

// sqlitePragmas are applied to every pooled connection through the DSN.
var sqlitePragmas = []string{
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
}

// withPragmas appends the recommended pragmas to a sqlite DSN unless the
// caller already set pragmas explicitly.
func withPragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	params := make([]string, len(sqlitePragmas))
	for i, p := range sqlitePragmas {
		params[i] = "_pragma=" + p
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// DefaultDBPath resolves the database file path in priority order:
// 1. CAREERPATH_DB environment variable
// 2. $XDG_DATA_HOME/careerpath/careerpath.db
// 3. ~/.local/share/careerpath/careerpath.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("CAREERPATH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "careerpath", "careerpath.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
