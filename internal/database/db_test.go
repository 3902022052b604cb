package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cinema-management/internal/config"
)

func TestDSNIncludesOptionalPassword(t *testing.T) {
	cfg := config.Config{DBUser: "app", DBPass: "secret", DBHost: "db", DBPort: "3306", DBName: "cinema"}
	assert.Equal(t, "app:secret@tcp(db:3306)/cinema?charset=utf8mb4&parseTime=true&loc=UTC", dsn(cfg))
}

func TestDSNOmitsEmptyPassword(t *testing.T) {
	cfg := config.Config{DBUser: "app", DBHost: "db", DBPort: "3306", DBName: "cinema"}
	assert.Equal(t, "app@tcp(db:3306)/cinema?charset=utf8mb4&parseTime=true&loc=UTC", dsn(cfg))
}
