package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestNoRows(t *testing.T) {
	if !noRows(sql.ErrNoRows) {
		t.Error("noRows(sql.ErrNoRows) = false")
	}
	if !noRows(fmt.Errorf("get trip: %w", sql.ErrNoRows)) {
		t.Error("noRows() = false for a wrapped ErrNoRows")
	}
	if noRows(errors.New("connection reset")) {
		t.Error("noRows() = true for an unrelated error")
	}
	if noRows(nil) {
		t.Error("noRows(nil) = true")
	}
}
