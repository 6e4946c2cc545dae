package cmd

import (
	"testing"
)

func TestNewListCmd(t *testing.T) {
	listCmd := newListCmd()

	if listCmd.Use != "list" {
		t.Errorf("Expected Use to be 'list', got %s", listCmd.Use)
	}

	if listCmd.RunE == nil {
		t.Error("Expected RunE function to be set")
	}

	if err := listCmd.Args(listCmd, []string{"extra"}); err == nil {
		t.Error("Expected arguments to be rejected")
	}
}
