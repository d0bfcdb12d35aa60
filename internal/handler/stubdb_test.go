package handler

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubDB is a minimal database/sql driver for exercising transaction
// boundaries without a MySQL server. It records every executed statement
// plus commits and rollbacks, and fails statements containing failOn.
type stubDB struct {
	mu        sync.Mutex
	execs     []string
	failOn    string
	commits   int
	rollbacks int
}

var (
	stubSeq     atomic.Int64
	errStubExec = errors.New("exec failed")
)

func openStubDB(t *testing.T, failOn string) (*sql.DB, *stubDB) {
	t.Helper()
	s := &stubDB{failOn: failOn}
	name := fmt.Sprintf("stubdb-%d", stubSeq.Add(1))
	sql.Register(name, stubDriver{db: s})
	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, s
}

type stubDriver struct{ db *stubDB }

func (d stubDriver) Open(string) (driver.Conn, error) { return stubConn{db: d.db}, nil }

type stubConn struct{ db *stubDB }

func (c stubConn) Prepare(q string) (driver.Stmt, error) { return stubStmt{db: c.db, query: q}, nil }
func (c stubConn) Close() error                          { return nil }
func (c stubConn) Begin() (driver.Tx, error)             { return stubTx{db: c.db}, nil }

type stubTx struct{ db *stubDB }

func (t stubTx) Commit() error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.db.commits++
	return nil
}

func (t stubTx) Rollback() error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.db.rollbacks++
	return nil
}

type stubStmt struct {
	db    *stubDB
	query string
}

func (s stubStmt) Close() error  { return nil }
func (s stubStmt) NumInput() int { return -1 }

func (s stubStmt) Exec([]driver.Value) (driver.Result, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.execs = append(s.db.execs, s.query)
	if s.db.failOn != "" && strings.Contains(s.query, s.db.failOn) {
		return nil, errStubExec
	}
	return stubResult{}, nil
}

func (s stubStmt) Query([]driver.Value) (driver.Rows, error) {
	return nil, errors.New("queries not supported")
}

type stubResult struct{}

func (stubResult) LastInsertId() (int64, error) { return 1, nil }
func (stubResult) RowsAffected() (int64, error) { return 1, nil }
