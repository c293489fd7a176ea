package db

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"familyledger/internal/domain/ledger"
	"familyledger/internal/domain/loan"
	"familyledger/internal/domain/user"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder keeps every statement gorm traces. With DryRun nothing reaches
// the mocked connection.
type sqlRecorder struct {
	logger.Interface
	mu    sync.Mutex
	stmts []string
}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.stmts = append(r.stmts, sql)
	r.mu.Unlock()
}

func (r *sqlRecorder) createTable(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stmts {
		if strings.HasPrefix(s, "CREATE TABLE") && strings.Contains(s, name) {
			return s
		}
	}
	return ""
}

func schemaDDL(t *testing.T, dial func(conn gorm.ConnPool) gorm.Dialector) *sqlRecorder {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	rec := &sqlRecorder{Interface: logger.Discard}
	gdb, err := gorm.Open(dial(sqlDB), &gorm.Config{DryRun: true, Logger: rec})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	if err := gdb.Migrator().CreateTable(&user.User{}, &loan.Loan{}, &ledger.Movement{}); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	return rec
}

func TestSchema_PostgresDDL(t *testing.T) {
	rec := schemaDDL(t, func(conn gorm.ConnPool) gorm.Dialector {
		return postgres.New(postgres.Config{Conn: conn})
	})

	cases := []struct{ table, column string }{
		{`"users"`, `"role" varchar(10)`},
		{`"loans"`, `"status" varchar(16)`},
		{`"movements"`, `"kind" varchar(20)`},
	}
	for _, c := range cases {
		ddl := rec.createTable(c.table)
		if ddl == "" {
			t.Fatalf("no CREATE TABLE for %s in %q", c.table, rec.stmts)
		}
		if strings.Contains(strings.ToLower(ddl), "enum(") {
			t.Fatalf("postgres has no inline enum type: %s", ddl)
		}
		if !strings.Contains(ddl, c.column) {
			t.Fatalf("%s: want column %s in %s", c.table, c.column, ddl)
		}
	}
}

func TestSchema_MySQLDDL(t *testing.T) {
	rec := schemaDDL(t, func(conn gorm.ConnPool) gorm.Dialector {
		return mysql.New(mysql.Config{Conn: conn, SkipInitializeWithVersion: true})
	})

	ddl := rec.createTable("`loans`")
	if !strings.Contains(ddl, "`status` varchar(16)") {
		t.Fatalf("want varchar status column, got %s", ddl)
	}
	if !strings.Contains(ddl, "`principal` decimal(18,2)") {
		t.Fatalf("want decimal principal column, got %s", ddl)
	}
}
