package user

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// usersTableColumns parses the users table definition out of the initial
// migration so the repo's SQL and the schema cannot drift apart silently.
func usersTableColumns(t *testing.T) map[string]bool {
	t.Helper()
	path := filepath.Join("..", "..", "..", "migrations", "0001_init.sql")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}

	start := strings.Index(string(raw), "CREATE TABLE users (")
	if start < 0 {
		t.Fatal("users table not found in migration")
	}
	body := string(raw)[start:]
	end := strings.Index(body, ");")
	if end < 0 {
		t.Fatal("users table definition not terminated")
	}

	cols := map[string]bool{}
	for _, line := range strings.Split(body[:end], "\n")[1:] {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		cols[fields[0]] = true
	}
	return cols
}

func TestRepoColumnsExistInSchema(t *testing.T) {
	cols := usersTableColumns(t)

	var used []string
	for _, m := range regexp.MustCompile(`u\.(\w+)`).FindAllStringSubmatch(userCols, -1) {
		used = append(used, m[1])
	}
	// columns the write paths touch beyond the select list
	used = append(used, "password_hash")

	for _, col := range used {
		if !cols[col] {
			t.Errorf("repo references column %q that the users table does not define", col)
		}
	}
}
