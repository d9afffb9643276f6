package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for any declared MIME type outside the
// PDF / DOCX / plain-text allowlist.
var ErrUnsupportedFormat = errors.New("unsupported file format")

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Extract pulls plain text out of an uploaded file, dispatching on the
// declared MIME type.
func Extract(path, mimeType string) (string, error) {
	switch mimeType {
	case "application/pdf", "pdf":
		return extractPDF(path)
	case docxMIME, "docx":
		return extractDOCX(path)
	case "text/plain", "txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading text file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
}

// extractPDF concatenates the text of every page in order, newline
// separated. A page that fails to yield text aborts the extraction.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading PDF: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting text from PDF page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// extractDOCX reads word/document.xml out of the package and joins the
// paragraph texts in document order. A DOCX is a zip archive holding one
// main XML part; the w:t runs carry all visible text.
func extractDOCX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("reading DOCX: %w", err)
	}
	defer archive.Close()

	var docPart *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docPart = f
			break
		}
	}
	if docPart == nil {
		return "", fmt.Errorf("reading DOCX: word/document.xml not found")
	}

	rc, err := docPart.Open()
	if err != nil {
		return "", fmt.Errorf("reading DOCX: %w", err)
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
