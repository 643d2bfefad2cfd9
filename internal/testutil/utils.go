package testutil

import (
	"fmt"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/npezzotti/go-livechat/internal/database"
)

func TestLogger(t *testing.T) *log.Logger {
	logger := log.New(os.Stdout, "[test] ", log.LstdFlags)
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
	})
	return logger
}

// MemoryDSN returns a sqlite DSN for a shared in-memory database private to
// the test. The database lives as long as one connection to it stays open.
func MemoryDSN(t *testing.T) string {
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=UTC", name)
}

// NewTestRepository opens a migrated in-memory sqlite repository that is
// closed when the test ends.
func NewTestRepository(t *testing.T) *database.SqlChatRepository {
	t.Helper()

	dsn := MemoryDSN(t)
	repo, err := database.NewSqlChatRepository(database.DriverSqlite3, dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})

	if err := database.Migrate(database.DriverSqlite3, dsn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return repo
}
