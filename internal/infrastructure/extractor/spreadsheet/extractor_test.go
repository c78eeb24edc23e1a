package spreadsheet

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractFlattensRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_ = f.SetCellValue("Sheet1", "A1", "Topic")
	_ = f.SetCellValue("Sheet1", "B1", "Hours")
	_ = f.SetCellValue("Sheet1", "A2", "Algebra")
	_ = f.SetCellValue("Sheet1", "B2", 12)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	got, err := NewExtractor().Extract(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "Topic Hours\nAlgebra 12" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestExtractRejectsGarbage(t *testing.T) {
	if _, err := NewExtractor().Extract(context.Background(), []byte("not a workbook")); err == nil {
		t.Fatalf("expected error for invalid workbook")
	}
}
