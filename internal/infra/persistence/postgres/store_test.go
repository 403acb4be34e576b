package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"chemcore/pkg/domain"
)

// stubDriver records executed statements and returns empty result sets so the
// store can be exercised without a running Postgres server.
type stubDriver struct {
	mu    sync.Mutex
	execs []string
}

func (d *stubDriver) Open(string) (driver.Conn, error) { return &stubConn{d: d}, nil }

func (d *stubDriver) statements() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.execs...)
}

type stubConn struct{ d *stubDriver }

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return &stubStmt{d: c.d, query: query}, nil
}

func (c *stubConn) Close() error              { return nil }
func (c *stubConn) Begin() (driver.Tx, error) { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubStmt struct {
	d     *stubDriver
	query string
}

func (s *stubStmt) Close() error  { return nil }
func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec([]driver.Value) (driver.Result, error) {
	s.d.mu.Lock()
	s.d.execs = append(s.d.execs, s.query)
	s.d.mu.Unlock()
	return driver.RowsAffected(1), nil
}

func (s *stubStmt) Query([]driver.Value) (driver.Rows, error) {
	return &stubRows{}, nil
}

type stubRows struct{}

func (*stubRows) Columns() []string              { return []string{"payload"} }
func (*stubRows) Close() error                   { return nil }
func (*stubRows) Next(dest []driver.Value) error { return io.EOF }

var stubRegisterOnce sync.Once

func useStubDriver(t *testing.T) *stubDriver {
	t.Helper()
	stub := &stubDriver{}
	stubRegisterOnce.Do(func() {
		sql.Register("chemcore-postgres-stub", &switchableDriver{})
	})
	switchable.set(stub)
	prev := sqlOpen
	sqlOpen = func(_, dsn string) (*sql.DB, error) {
		return sql.Open("chemcore-postgres-stub", dsn)
	}
	t.Cleanup(func() { sqlOpen = prev })
	return stub
}

// switchableDriver lets each test install its own recording stub behind the
// single registered driver name.
type switchableDriver struct{}

var switchable = &switchHolder{}

type switchHolder struct {
	mu     sync.Mutex
	target *stubDriver
}

func (h *switchHolder) set(d *stubDriver) {
	h.mu.Lock()
	h.target = d
	h.mu.Unlock()
}

func (h *switchHolder) get() *stubDriver {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.target
}

func (*switchableDriver) Open(name string) (driver.Conn, error) {
	target := switchable.get()
	if target == nil {
		return nil, errors.New("no stub installed")
	}
	return target.Open(name)
}

func TestNewStoreAppliesSchemaAndStateTable(t *testing.T) {
	stub := useStubDriver(t)

	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	statements := stub.statements()
	var sawDDL, sawStateTable bool
	for _, stmt := range statements {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS chemicals") {
			sawDDL = true
		}
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS state") {
			sawStateTable = true
		}
	}
	if !sawDDL {
		t.Fatalf("inventory DDL not applied:\n%s", strings.Join(statements, "\n"))
	}
	if !sawStateTable {
		t.Fatalf("state table not ensured:\n%s", strings.Join(statements, "\n"))
	}
	if len(store.ListChemicals()) != 0 {
		t.Fatalf("expected empty hydrated store")
	}
}

func TestRunInTransactionSnapshotsToPostgres(t *testing.T) {
	stub := useStubDriver(t)

	store, err := NewStore("postgres://stub/chemcore", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.AddChemical(domain.ChemicalRecord{Base: domain.Base{ID: "CHEM001"}, Name: "Hydrochloric Acid", Symbol: "HCl", Category: domain.CategoryAcid})
		return err
	}); err != nil {
		t.Fatalf("transaction: %v", err)
	}

	var sawUpsert bool
	for _, stmt := range stub.statements() {
		if strings.Contains(stmt, "INSERT INTO state") && strings.Contains(stmt, "ON CONFLICT(bucket)") {
			sawUpsert = true
		}
	}
	if !sawUpsert {
		t.Fatalf("snapshot upsert not executed")
	}
	if _, ok := store.GetChemical("CHEM001"); !ok {
		t.Fatalf("record missing from hydrated state")
	}
}

func TestNewStoreOpenFailure(t *testing.T) {
	prev := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) {
		return nil, fmt.Errorf("dial refused")
	}
	t.Cleanup(func() { sqlOpen = prev })

	if _, err := NewStore("postgres://nowhere/db", nil); err == nil {
		t.Fatalf("expected open error")
	}
}
