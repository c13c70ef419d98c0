package commands

import (
	"strings"
	"testing"
)

func TestMoveCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		child   string
		parents []string
		wantErr bool
		errMsg  string
	}{
		{name: "valid move", child: "Launch", parents: []string{"Website"}},
		{name: "valid to top level", child: "Launch"},
		{name: "empty child", child: "", wantErr: true, errMsg: "child ID is required"},
		{name: "blank parent", child: "Launch", parents: []string{""}, wantErr: true, errMsg: "parent IDs[0] is blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&MoveCommand{ChildRef: tt.child, ParentRefs: tt.parents}).Validate()
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLinkCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		parent  string
		child   string
		wantErr bool
	}{
		{"valid", "Website", "Launch", false},
		{"missing parent", "", "Launch", true},
		{"missing child", "Website", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&LinkCommand{ParentRef: tt.parent, ChildRef: tt.child}).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			err = (&UnlinkCommand{ParentRef: tt.parent, ChildRef: tt.child}).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("unlink Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
