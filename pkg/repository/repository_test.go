package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/filedesk/filevault/pkg/repository"
)

var (
	errMissing = errors.New("record not found")
	errTaken   = errors.New("record already exists")
)

func TestMapError(t *testing.T) {
	passthrough := errors.New("connection reset")
	fkViolation := &pgconn.PgError{Code: "23503"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errMissing},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), errMissing},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errTaken},
		{"other pg error passes through", fkViolation, fkViolation},
		{"unrelated passes through", passthrough, passthrough},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.MapError(tt.err, errMissing, errTaken); !errors.Is(got, tt.want) {
				t.Errorf("MapError() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A minimal driver tracking transaction outcomes, enough to observe
// commit and rollback decisions without a database.
type txDriver struct {
	conn *txConn
}

func (d *txDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

type txConn struct {
	commits   int
	rollbacks int
}

func (c *txConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("unsupported") }
func (c *txConn) Close() error                        { return nil }
func (c *txConn) Begin() (driver.Tx, error)           { return &txRecorder{conn: c}, nil }

type txRecorder struct {
	conn *txConn
}

func (t *txRecorder) Commit() error {
	t.conn.commits++
	return nil
}

func (t *txRecorder) Rollback() error {
	t.conn.rollbacks++
	return nil
}

var txTestConn = &txConn{}

func init() {
	sql.Register("txrecorder", &txDriver{conn: txTestConn})
}

func TestWithTx(t *testing.T) {
	conn := txTestConn

	db, err := sql.Open("txrecorder", "")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	got, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("WithTx() failed: %v", err)
	}
	if got != 42 {
		t.Errorf("WithTx() = %d, want 42", got)
	}
	if conn.commits != 1 || conn.rollbacks != 0 {
		t.Errorf("commits/rollbacks = %d/%d, want 1/0", conn.commits, conn.rollbacks)
	}

	boom := errors.New("insert failed")
	_, err = repository.WithTx(ctx, db, func(tx *sql.Tx) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want the callback error", err)
	}
	if conn.rollbacks != 1 {
		t.Errorf("rollbacks = %d, want 1 after callback failure", conn.rollbacks)
	}
	if conn.commits != 1 {
		t.Errorf("commits = %d, want no commit after callback failure", conn.commits)
	}
}
