package storage

import (
	"database/sql"
	"errors"
	"time"

	"ClassroomAnswerLog/internal/models"

	"golang.org/x/crypto/bcrypt"
	"modernc.org/sqlite"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrDBNotReady     = errors.New("database not initialised")
)

// sqlite extended result code for a UNIQUE constraint violation
const sqliteConstraintUnique = 2067

func CreateTeacher(username, passwordHash string) error {
	if db == nil {
		return ErrDBNotReady
	}
	stmt, err := db.Prepare("INSERT INTO teachers(username, password_hash, created_at) VALUES(?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(username, passwordHash, time.Now())
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteConstraintUnique {
			return ErrUsernameExists
		}
		return err
	}
	return nil
}

// GetTeacherByUsername returns sql.ErrNoRows when no such account exists.
func GetTeacherByUsername(username string) (models.Teacher, error) {
	var teacher models.Teacher
	if db == nil {
		return teacher, ErrDBNotReady
	}

	row := db.QueryRow("SELECT id, username, password_hash FROM teachers WHERE username = ?", username)
	if err := row.Scan(&teacher.ID, &teacher.Username, &teacher.PasswordHash); err != nil {
		return teacher, err
	}
	return teacher, nil
}

// EnsureTeacher seeds an account from configuration. An existing account
// keeps its stored password.
func EnsureTeacher(username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	if _, err := GetTeacherByUsername(username); err == nil {
		return false, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if err := CreateTeacher(username, string(hash)); err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
