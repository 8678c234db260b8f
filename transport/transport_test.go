package transport

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"interrupted", ErrInterrupted, true},
		{"renegotiate", ErrRenegotiate, true},
		{"wrapped interrupted", fmt.Errorf("recv: %w", ErrInterrupted), true},
		{"nil", nil, false},
		{"other", errors.New("connection reset"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
