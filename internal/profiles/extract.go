package profiles

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedFile is returned for uploads that are neither PDF nor DOCX.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrUnreadableFile is returned when a PDF or DOCX cannot be opened.
	ErrUnreadableFile = errors.New("unreadable document")
)

// Upload is a resume file received from a client.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Extraction is the result of processing an upload.
type Extraction struct {
	MimeType string           `json:"mimeType"`
	Pages    int              `json:"pages,omitempty"`
	Profile  CandidateProfile `json:"profile"`
}

// Extract validates that up is a readable PDF or DOCX and returns the
// placeholder profile.
func Extract(ctx context.Context, up Upload) (Extraction, error) {
	if err := ctx.Err(); err != nil {
		return Extraction{}, err
	}
	if len(up.Data) == 0 {
		return Extraction{}, fmt.Errorf("%w: empty file", ErrUnreadableFile)
	}

	mimeType := DetectMimeType(up.ContentType, up.FileName, up.Data)
	out := Extraction{MimeType: mimeType, Profile: Placeholder()}
	switch mimeType {
	case MimePDF:
		pages, err := checkPDF(up.Data)
		if err != nil {
			return Extraction{}, fmt.Errorf("%w: pdf: %v", ErrUnreadableFile, err)
		}
		out.Pages = pages
	case MimeDOCX:
		if err := checkDOCX(up.Data); err != nil {
			return Extraction{}, fmt.Errorf("%w: docx: %v", ErrUnreadableFile, err)
		}
	default:
		return Extraction{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, mimeType)
	}
	return out, nil
}

// DetectMimeType resolves the document type from the declared content type,
// the payload signature and the file extension, in that order. Generic zip
// and octet-stream declarations are refined by inspecting the payload.
func DetectMimeType(contentType, fileName string, data []byte) string {
	declared := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch declared {
	case MimePDF, MimeDOCX:
		return declared
	}

	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return MimePDF
	}
	if isDOCXArchive(data) {
		return MimeDOCX
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	}
	if declared != "" && declared != "application/octet-stream" && declared != "application/zip" {
		return declared
	}
	return http.DetectContentType(data)
}

func isDOCXArchive(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, `\`, "/") == "word/document.xml" {
			return true
		}
	}
	return false
}

func checkPDF(data []byte) (pages int, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parse: %v", rec)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	n := reader.NumPage()
	if n == 0 {
		return 0, errors.New("no pages")
	}
	return n, nil
}

func checkDOCX(data []byte) error {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}
	defer doc.Close()
	if !hasDOCXText(doc.Editable().GetContent()) {
		return errors.New("document has no text")
	}
	return nil
}

var docxTextRun = regexp.MustCompile(`<w:t(?:\s[^>]*)?>([^<]*)</w:t>`)

// hasDOCXText reports whether document XML holds at least one non-blank
// text run.
func hasDOCXText(content string) bool {
	for _, m := range docxTextRun.FindAllStringSubmatch(content, -1) {
		if strings.TrimSpace(m[1]) != "" {
			return true
		}
	}
	return false
}
