package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrationsPresent(t *testing.T) {
	pgEntries, err := fs.ReadDir(PostgresFS, "postgres")
	if err != nil {
		t.Fatalf("read postgres migrations: %v", err)
	}
	if len(pgEntries) == 0 {
		t.Error("no embedded postgres migrations")
	}

	chEntries, err := fs.ReadDir(ClickhouseFS, "clickhouse")
	if err != nil {
		t.Fatalf("read clickhouse migrations: %v", err)
	}
	if len(chEntries) == 0 {
		t.Error("no embedded clickhouse migrations")
	}
}

func TestSplitStatements(t *testing.T) {
	input := `-- comment line
CREATE TABLE a (x String) ENGINE = MergeTree() ORDER BY x;

-- another comment
CREATE TABLE b (y String) ENGINE = MergeTree() ORDER BY y;
`
	stmts := splitStatements(input)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(stmts), stmts)
	}
	if !strings.HasPrefix(stmts[0], "CREATE TABLE a") {
		t.Errorf("first statement = %q", stmts[0])
	}
	if !strings.HasPrefix(stmts[1], "CREATE TABLE b") {
		t.Errorf("second statement = %q", stmts[1])
	}
}

func TestValidateNoSemicolonInStrings(t *testing.T) {
	if err := validateNoSemicolonInStrings(`SELECT 'safe' FROM t;`); err != nil {
		t.Errorf("safe SQL rejected: %v", err)
	}
	if err := validateNoSemicolonInStrings(`SELECT 'it''s safe' FROM t;`); err != nil {
		t.Errorf("escaped quote rejected: %v", err)
	}
	if err := validateNoSemicolonInStrings(`SELECT 'a;b' FROM t;`); err == nil {
		t.Error("semicolon inside string literal not detected")
	}
}

func TestEmbeddedClickhouseMigrationsSplitCleanly(t *testing.T) {
	entries, err := fs.ReadDir(ClickhouseFS, "clickhouse")
	if err != nil {
		t.Fatalf("read clickhouse migrations: %v", err)
	}
	for _, entry := range entries {
		data, err := fs.ReadFile(ClickhouseFS, "clickhouse/"+entry.Name())
		if err != nil {
			t.Fatalf("read %s: %v", entry.Name(), err)
		}
		if err := validateNoSemicolonInStrings(string(data)); err != nil {
			t.Errorf("%s: %v", entry.Name(), err)
		}
		if len(splitStatements(string(data))) == 0 {
			t.Errorf("%s: no statements", entry.Name())
		}
	}
}
