package repository

import (
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestNewUserRepository(t *testing.T) {
	repo := NewUserRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil UserRepository")
	}
	if repo.db != nil {
		t.Fatal("expected nil db when constructed with nil")
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrUserNotFound.Error() != "user not found" {
		t.Fatalf("unexpected error message: %s", ErrUserNotFound.Error())
	}
	if ErrDuplicateEmail.Error() != "email already exists" {
		t.Fatalf("unexpected error message: %s", ErrDuplicateEmail.Error())
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if isDuplicateEntryError(nil) {
		t.Fatal("nil error should not be a duplicate entry error")
	}
	if isDuplicateEntryError(ErrUserNotFound) {
		t.Fatal("ErrUserNotFound should not be a duplicate entry error")
	}
	if !isDuplicateEntryError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}) {
		t.Fatal("MySQL error 1062 should be a duplicate entry error")
	}
	if !isDuplicateEntryError(fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062})) {
		t.Fatal("wrapped MySQL error 1062 should be a duplicate entry error")
	}
	if isDuplicateEntryError(&mysql.MySQLError{Number: 1452}) {
		t.Fatal("MySQL error 1452 should not be a duplicate entry error")
	}
}
