package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestMalformedDateErrorUnwrap(t *testing.T) {
	root := errors.New("bad month")
	err := fmt.Errorf("loading: %w", &MalformedDateError{Input: "2024-13-01", Line: 4, Err: root})

	if !errors.Is(err, root) {
		t.Fatal("expected errors.Is to reach the cause")
	}

	var mde *MalformedDateError
	if !errors.As(err, &mde) {
		t.Fatal("expected errors.As to match MalformedDateError")
	}
	if mde.Input != "2024-13-01" {
		t.Errorf("Input = %q, want 2024-13-01", mde.Input)
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Errorf("message %q missing line number", err.Error())
	}
}

func TestEngineErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"insufficient",
			&InsufficientDataError{Op: "average delta", Need: 7, Have: 3},
			"need at least 7 observations, have 3",
		},
		{
			"division",
			&DivisionByZeroError{Op: "growth rate", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			"before 2024-03 is 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.err.Error(), tt.want) {
				t.Errorf("Error() = %q, want substring %q", tt.err.Error(), tt.want)
			}
		})
	}
}
