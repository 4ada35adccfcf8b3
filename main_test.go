package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/insightdelivered/holerite-analyzer/internal/analyzer"
	"github.com/insightdelivered/holerite-analyzer/internal/margin"
)

const joaoText = "NOME\nJOAO SILVA\nMATRICULA 123456\nVENCIMENTOS 3.000,00\nDESCONTOS 300,00\nBRADESCO CARTAO 150,00\nLIQUIDO 2.700,00"

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		writeFixture(t, dir, "joao.pdf", joaoText),
		writeFixture(t, dir, "notas.txt", "anotacoes"),
		filepath.Join(dir, "ausente.pdf"),
	}

	docs := loadDocuments(inputs)

	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3", len(docs))
	}
	if docs[0].Err != nil || string(docs[0].Data) != joaoText {
		t.Errorf("first document: got err=%v data=%q", docs[0].Err, docs[0].Data)
	}
	if docs[1].Err == nil || docs[1].Filename != "notas.txt" {
		t.Errorf("second document: got %+v, want load error", docs[1])
	}
	if docs[2].Err == nil || docs[2].Filename != "ausente.pdf" {
		t.Errorf("third document: got %+v, want load error", docs[2])
	}
}

func TestProcessFiles_SkipsBadInputs(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		writeFixture(t, dir, "joao.pdf", joaoText),
		writeFixture(t, dir, "notas.txt", "anotacoes"),
		writeFixture(t, dir, "ana.pdf", "NOME\nANA\nSTARCARD CARTAO 80,00"),
	}
	out := filepath.Join(dir, "lote.json")

	a := analyzer.New(analyzer.StaticText{}, nil, margin.Tiered, nil, 2)
	if err := processFiles(context.Background(), a, inputs, "json", out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	output := string(data)
	if !strings.Contains(output, `"name": "JOAO SILVA"`) || !strings.Contains(output, `"name": "ANA"`) {
		t.Errorf("expected both payslips in output, got %s", output)
	}
	if strings.Contains(output, "notas.txt") {
		t.Error("rejected input should not produce opportunity rows")
	}
}

func TestProcessFiles_NothingAnalyzed(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{writeFixture(t, dir, "notas.txt", "anotacoes")}

	a := analyzer.New(analyzer.StaticText{}, nil, margin.Tiered, nil, 1)
	if err := processFiles(context.Background(), a, inputs, "csv", filepath.Join(dir, "out.csv")); err == nil {
		t.Error("expected error when no document could be analyzed")
	}
}
