package gormstore

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"jobbotron/internal/store"
)

// The services only match the store's sentinels, so every constraint
// error gorm's TranslateError can produce must map onto one of them.
func TestTranslateMapsConstraintErrors(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, store.ErrNotFound},
		{"duplicate key", gorm.ErrDuplicatedKey, store.ErrConflict},
		{"foreign key violated", gorm.ErrForeignKeyViolated, store.ErrNotFound},
	}
	for _, tc := range cases {
		if got := translate(tc.in); !errors.Is(got, tc.want) {
			t.Fatalf("%s: translate(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestTranslatePassesThroughUnknownErrors(t *testing.T) {
	unknown := fmt.Errorf("connection reset")
	if got := translate(unknown); !errors.Is(got, unknown) {
		t.Fatalf("translate(%v) = %v, want passthrough", unknown, got)
	}
}

func TestTranslateWrappedForeignKeyViolation(t *testing.T) {
	wrapped := fmt.Errorf("create application: %w", gorm.ErrForeignKeyViolated)
	if got := translate(wrapped); !errors.Is(got, store.ErrNotFound) {
		t.Fatalf("translate(%v) = %v, want ErrNotFound", wrapped, got)
	}
}
