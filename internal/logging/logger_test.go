package logging

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		dev     bool
		wantErr bool
	}{
		{"", false, false},
		{"debug", true, false},
		{"warn", false, false},
		{"loud", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(tt.level, tt.dev)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatal("expected logger, got nil")
			}
		})
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Error("OrNop(nil) should return a usable logger")
	}
}
