package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"ClassroomAnswerLog/pkg/logger"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

var db *sql.DB

// InitDB opens the sqlite database holding teacher accounts.
// Submissions never go here; the ledger file is their only local store.
func InitDB(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("InitDB(): failed to create directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("InitDB(): failed to open database: %w", err)
	}
	if err = conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("InitDB(): failed to connect to database: %w", err)
	}

	createTeachersTable := `
	CREATE TABLE IF NOT EXISTS teachers (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"username" TEXT NOT NULL UNIQUE,
			"password_hash" TEXT NOT NULL,
			"created_at" DATETIME NOT NULL
	);`
	if _, err := conn.Exec(createTeachersTable); err != nil {
		conn.Close()
		return fmt.Errorf("InitDB(): failed to create teachers table: %w", err)
	}

	db = conn
	logger.Log.Info("InitDB(): Init and create table successfully!", zap.String("path", path))
	return nil
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}
