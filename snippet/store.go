package snippet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tliron/commonlog"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var log = commonlog.GetLogger("tinyjs.snippet")

// Store persists snippets in the "programs" table of a SQLite database.
type Store struct {
	db   *sql.DB
	path string

	insertStmt    *sql.Stmt
	getStmt       *sql.Stmt
	getByNameStmt *sql.Stmt
	listStmt      *sql.Stmt
	deleteStmt    *sql.Stmt
}

// Open opens or creates the database at path and makes sure the schema
// exists.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := s.prepareStatements(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	log.Debugf("opened snippet store %s", path)
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS programs (
		id INTEGER PRIMARY KEY,
		name VARCHAR(64) UNIQUE,
		code TEXT NOT NULL,
		description VARCHAR(64)
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Store) prepareStatements(ctx context.Context) error {
	var err error

	s.insertStmt, err = s.db.PrepareContext(ctx, `
		INSERT INTO programs (name, code, description)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}

	s.getStmt, err = s.db.PrepareContext(ctx, `
		SELECT id, name, code, description FROM programs WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare get statement: %w", err)
	}

	s.getByNameStmt, err = s.db.PrepareContext(ctx, `
		SELECT id, name, code, description FROM programs WHERE name = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare get-by-name statement: %w", err)
	}

	s.listStmt, err = s.db.PrepareContext(ctx, `
		SELECT id, name, code, description FROM programs ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	s.deleteStmt, err = s.db.PrepareContext(ctx, `
		DELETE FROM programs WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}

	return nil
}

// Create validates and inserts snip, returning it with its new ID.
func (s *Store) Create(ctx context.Context, snip Snippet) (Snippet, error) {
	if err := snip.Validate(); err != nil {
		return Snippet{}, err
	}

	res, err := s.insertStmt.ExecContext(ctx, nullString(snip.Name), snip.Code, nullString(snip.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return Snippet{}, fmt.Errorf("%w: %q", ErrDuplicateName, snip.Name)
		}
		return Snippet{}, fmt.Errorf("failed to insert snippet: %w", err)
	}
	snip.ID, err = res.LastInsertId()
	if err != nil {
		return Snippet{}, fmt.Errorf("failed to read snippet id: %w", err)
	}

	log.Infof("saved snippet %d (%q)", snip.ID, snip.Name)
	return snip, nil
}

func (s *Store) Get(ctx context.Context, id int64) (Snippet, error) {
	return scanSnippet(s.getStmt.QueryRowContext(ctx, id))
}

func (s *Store) GetByName(ctx context.Context, name string) (Snippet, error) {
	if name == "" {
		return Snippet{}, ErrNotFound
	}
	return scanSnippet(s.getByNameStmt.QueryRowContext(ctx, name))
}

// List returns all snippets ordered by id.
func (s *Store) List(ctx context.Context) ([]Snippet, error) {
	rows, err := s.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}
	defer rows.Close()

	var snippets []Snippet
	for rows.Next() {
		snip, err := scanSnippet(rows)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, snip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}
	return snippets, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.deleteStmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete snippet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete snippet: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	log.Infof("deleted snippet %d", id)
	return nil
}

func (s *Store) Close() error {
	for _, stmt := range []*sql.Stmt{s.insertStmt, s.getStmt, s.getByNameStmt, s.listStmt, s.deleteStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnippet(row scanner) (Snippet, error) {
	var (
		snip        Snippet
		name        sql.NullString
		description sql.NullString
	)
	err := row.Scan(&snip.ID, &name, &snip.Code, &description)
	if errors.Is(err, sql.ErrNoRows) {
		return Snippet{}, ErrNotFound
	}
	if err != nil {
		return Snippet{}, fmt.Errorf("failed to load snippet: %w", err)
	}
	snip.Name = name.String
	snip.Description = description.String
	return snip, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
