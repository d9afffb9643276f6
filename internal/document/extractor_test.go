package document

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minutes.txt")
	if err := os.WriteFile(path, []byte("Meeting called to order at 7pm."), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, mime := range []string{"text/plain", "txt"} {
		text, err := Extract(path, mime)
		if err != nil {
			t.Fatalf("Extract(%s): %v", mime, err)
		}
		if text != "Meeting called to order at 7pm." {
			t.Errorf("Extract(%s) = %q", mime, text)
		}
	}
}

func TestExtractDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minutes.docx")
	writeTestDOCX(t, path, []string{"First paragraph.", "Second paragraph."})

	text, err := Extract(path, docxMIME)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := "First paragraph.\nSecond paragraph."
	if text != want {
		t.Errorf("Extract = %q, want %q", text, want)
	}
}

func TestExtractDOCXMissingDocumentPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("word/styles.xml")
	w.Write([]byte("<styles/>"))
	zw.Close()
	f.Close()

	if _, err := Extract(path, "docx"); err == nil {
		t.Fatal("expected error for archive without word/document.xml")
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	_, err := Extract("whatever.bin", "application/octet-stream")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, err := Extract(filepath.Join(t.TempDir(), "nope.txt"), "text/plain"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// writeTestDOCX builds a minimal OOXML package with one w:t run per
// paragraph.
func writeTestDOCX(t *testing.T, path string, paragraphs []string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}

	body := `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	for _, p := range paragraphs {
		body += `<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`
	}
	body += `</w:body></w:document>`

	if _, err := w.Write([]byte(body)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}
