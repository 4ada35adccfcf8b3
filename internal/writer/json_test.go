package writer

import (
	"bytes"
	"strings"
	"testing"
)

func TestJSONWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleRecords()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		`"name": "JOAO SILVA"`,
		`"type": "CONHECIDA"`,
		`"category": "OWN_CONTRACT"`,
		`"amount": 150`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output", want)
		}
	}
}

func TestJSONWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("got %q, want %q", got, "[]")
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		name    string
		wantExt string
		wantErr bool
	}{
		{"csv", ".csv", false},
		{"XLSX", ".xlsx", false},
		{" json ", ".json", false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, format, err := ForFormat(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w == nil {
				t.Fatal("expected a writer")
			}
			if format.Extension != tt.wantExt {
				t.Errorf("extension: got %q, want %q", format.Extension, tt.wantExt)
			}
		})
	}
}
