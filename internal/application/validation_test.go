package application

import (
	"errors"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "name",
			value:     "Garden",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "name",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "nodeID",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if !errors.Is(err, ErrInvalidRequest) {
					t.Error("validation errors should match ErrInvalidRequest")
				}
			}
		})
	}
}

func TestValidateIDs(t *testing.T) {
	if err := ValidateIDs("parentIDs", []string{"a", "b"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateIDs("parentIDs", []string{"a", " "})
	if err == nil || err.Error() != "parentIDs: parent IDs[1] is blank" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"not found", &NodeNotFoundError{ID: "x"}, ErrNotFound},
		{"duplicate edge", &RelationshipError{ParentID: "p", ChildID: "c", Err: ErrAlreadyExists}, ErrAlreadyExists},
		{"cycle", &RelationshipError{ParentID: "p", ChildID: "c", Err: ErrCycleDetected}, ErrCycleDetected},
		{"has children", &HasChildrenError{ID: "x", ChildCount: 2}, ErrHasChildren},
		{"storage", &StorageError{Op: "commit", Err: errors.New("disk full")}, ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("expected %v to match %v", tt.err, tt.target)
			}
		})
	}
}

func TestWrapStorage(t *testing.T) {
	if WrapStorage("op", nil) != nil {
		t.Error("nil stays nil")
	}

	notFound := &NodeNotFoundError{ID: "x"}
	if got := WrapStorage("op", notFound); got != notFound {
		t.Errorf("domain errors pass through, got %v", got)
	}

	raw := errors.New("connection reset")
	wrapped := WrapStorage("begin", raw)
	if !errors.Is(wrapped, ErrStorage) || !errors.Is(wrapped, raw) {
		t.Errorf("expected storage error wrapping cause, got %v", wrapped)
	}
	if again := WrapStorage("commit", wrapped); again != wrapped {
		t.Error("storage errors are not wrapped twice")
	}
}
