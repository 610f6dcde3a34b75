package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/MimeLyc/tubescribe/internal/transcript"
)

// ErrDuplicateURL reports an insert for a source URL that already has a
// record. Callers recover by re-reading the existing record; the unique
// index is the only cross-request ordering guarantee.
var ErrDuplicateURL = errors.New("a transcript for this URL already exists")

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLiteStore persists transcript records in a single sqlite file. The store
// is append-only: records are created once and never updated or deleted.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db}
	if err := store.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	// Bootstrap schema_migrations table so we can track applied versions.
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version := migrationVersion(entry.Name())
		if version <= 0 {
			continue
		}
		var exists int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %s: %w", entry.Name(), err)
		}
		if exists > 0 {
			continue
		}
		content, err := migrationFiles.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// migrationVersion extracts the leading integer from a migration filename (e.g. "001_init.sql" → 1).
func migrationVersion(name string) int {
	for i, c := range name {
		if c < '0' || c > '9' {
			if i == 0 {
				return 0
			}
			n, _ := strconv.Atoi(name[:i])
			return n
		}
	}
	n, _ := strconv.Atoi(name)
	return n
}

const recordColumns = `id, source_url, video_id, title, channel, language, segments_json, created_at`

// Insert assigns id and creation time, persists the draft, and returns the
// full record. A second insert for the same source URL fails with
// ErrDuplicateURL.
func (s *SQLiteStore) Insert(ctx context.Context, draft transcript.Draft) (*transcript.Record, error) {
	if len(draft.Segments) == 0 {
		return nil, fmt.Errorf("refusing to insert a record with no segments")
	}

	segmentsJSON, err := json.Marshal(draft.Segments)
	if err != nil {
		return nil, fmt.Errorf("marshal segments: %w", err)
	}

	record := &transcript.Record{
		ID:        uuid.NewString(),
		SourceURL: draft.SourceURL,
		VideoID:   draft.VideoID,
		Title:     draft.Title,
		Channel:   draft.Channel,
		Language:  draft.Language,
		Segments:  draft.Segments,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO transcripts (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.SourceURL,
		record.VideoID,
		nullable(record.Title),
		nullable(record.Channel),
		record.Language,
		string(segmentsJSON),
		record.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateURL
		}
		return nil, err
	}
	return record, nil
}

// FindByURL returns the record for a source URL, or (nil, nil) when absent.
func (s *SQLiteStore) FindByURL(ctx context.Context, sourceURL string) (*transcript.Record, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+recordColumns+` FROM transcripts WHERE source_url = ?`,
		sourceURL,
	)
	return scanRecord(row)
}

// FindByVideoID returns the record for a video id, or (nil, nil) when absent.
func (s *SQLiteStore) FindByVideoID(ctx context.Context, videoID string) (*transcript.Record, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+recordColumns+` FROM transcripts WHERE video_id = ?`,
		videoID,
	)
	return scanRecord(row)
}

// Count reports the number of stored transcripts.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transcripts`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanRecord(row *sql.Row) (*transcript.Record, error) {
	var record transcript.Record
	var title sql.NullString
	var channel sql.NullString
	var segmentsJSON string
	if err := row.Scan(
		&record.ID,
		&record.SourceURL,
		&record.VideoID,
		&title,
		&channel,
		&record.Language,
		&segmentsJSON,
		&record.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if title.Valid {
		record.Title = &title.String
	}
	if channel.Valid {
		record.Channel = &channel.String
	}
	if err := json.Unmarshal([]byte(segmentsJSON), &record.Segments); err != nil {
		return nil, fmt.Errorf("unmarshal segments: %w", err)
	}
	return &record, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// modernc.org/sqlite surfaces constraint failures as SQLITE_CONSTRAINT_UNIQUE
// in the error text; there is no exported sentinel to compare against.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
