package profiles

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderIsValid(t *testing.T) {
	p := Placeholder()
	require.NoError(t, p.Validate())
	assert.Equal(t, []string{"JavaScript", "React", "Node.js", "Python"}, p.Skills)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *CandidateProfile)
		field   string
		wantErr bool
	}{
		{name: "empty profile", mutate: func(p *CandidateProfile) { *p = CandidateProfile{} }},
		{name: "cgpa out of range", mutate: func(p *CandidateProfile) { p.CGPA = "10.5" }, field: "CandidateProfile.CGPA", wantErr: true},
		{name: "marks not numeric", mutate: func(p *CandidateProfile) { p.TenthMarks = "ninety" }, field: "CandidateProfile.TenthMarks", wantErr: true},
		{name: "marks negative", mutate: func(p *CandidateProfile) { p.TwelfthMarks = "-1" }, field: "CandidateProfile.TwelfthMarks", wantErr: true},
		{name: "blank skill", mutate: func(p *CandidateProfile) { p.Skills = []string{"Go", ""} }, field: "CandidateProfile.Skills[1]", wantErr: true},
		{name: "project without title", mutate: func(p *CandidateProfile) { p.Projects = []Project{{Description: "x"}} }, field: "CandidateProfile.Projects[0].Title", wantErr: true},
		{name: "internship without company", mutate: func(p *CandidateProfile) { p.Internships = []Internship{{Role: "Intern"}} }, field: "CandidateProfile.Internships[0].Company", wantErr: true},
		{name: "boundary marks", mutate: func(p *CandidateProfile) { p.TenthMarks = "100"; p.CGPA = "0" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Placeholder()
			tt.mutate(&p)

			err := p.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, FieldErrors(err), tt.field)
		})
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("boom")))
}

func TestDetectMimeType(t *testing.T) {
	pdfData := minimalPDF()
	docxData := minimalDOCX(t)

	tests := []struct {
		name        string
		contentType string
		fileName    string
		data        []byte
		want        string
	}{
		{name: "declared pdf", contentType: "application/pdf", fileName: "cv", data: []byte("x"), want: MimePDF},
		{name: "octet stream pdf signature", contentType: "application/octet-stream", fileName: "cv.bin", data: pdfData, want: MimePDF},
		{name: "zip declared docx", contentType: "application/zip", fileName: "cv.zip", data: docxData, want: MimeDOCX},
		{name: "extension fallback", contentType: "", fileName: "CV.DOCX", data: []byte("not a zip"), want: MimeDOCX},
		{name: "plain text", contentType: "text/plain; charset=utf-8", fileName: "cv.txt", data: []byte("hello"), want: "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMimeType(tt.contentType, tt.fileName, tt.data))
		})
	}
}

func TestExtractPDF(t *testing.T) {
	out, err := Extract(context.Background(), Upload{FileName: "cv.pdf", ContentType: "application/pdf", Data: minimalPDF()})

	require.NoError(t, err)
	assert.Equal(t, MimePDF, out.MimeType)
	assert.Equal(t, 1, out.Pages)
	assert.Equal(t, Placeholder(), out.Profile)
}

func TestExtractDOCX(t *testing.T) {
	out, err := Extract(context.Background(), Upload{FileName: "cv.docx", Data: minimalDOCX(t)})

	require.NoError(t, err)
	assert.Equal(t, MimeDOCX, out.MimeType)
	assert.Equal(t, "John Doe", out.Profile.Name)
}

func TestHasDOCXText(t *testing.T) {
	assert.True(t, hasDOCXText(`<w:p><w:r><w:t>Go developer</w:t></w:r></w:p>`))
	assert.True(t, hasDOCXText(`<w:r><w:t xml:space="preserve"> SQL </w:t></w:r>`))
	assert.False(t, hasDOCXText(`<w:p><w:r><w:t></w:t></w:r></w:p>`))
	assert.False(t, hasDOCXText(`<w:p><w:pPr/></w:p>`))
	assert.False(t, hasDOCXText(`<w:tbl></w:tbl>`))
}

func TestExtractErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Extract(ctx, Upload{FileName: "cv.txt", ContentType: "text/plain", Data: []byte("hello")})
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = Extract(ctx, Upload{FileName: "cv.pdf", Data: []byte("%PDF-1.4\ngarbage")})
	assert.ErrorIs(t, err, ErrUnreadableFile)

	_, err = Extract(ctx, Upload{FileName: "cv.docx", Data: []byte("not a zip")})
	assert.ErrorIs(t, err, ErrUnreadableFile)

	_, err = Extract(ctx, Upload{FileName: "cv.pdf"})
	assert.ErrorIs(t, err, ErrUnreadableFile)

	blank := docxWithBody(t, `<w:p><w:r><w:t xml:space="preserve">   </w:t></w:r></w:p>`)
	_, err = Extract(ctx, Upload{FileName: "cv.docx", Data: blank})
	assert.ErrorIs(t, err, ErrUnreadableFile)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Extract(canceled, Upload{FileName: "cv.pdf", Data: minimalPDF()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`name: Asha
cgpa: "8.1"
skills:
  - Python
  - SQL
projects:
  - title: Inventory API
    description: Flask service
`), 0o644))

	p, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, []string{"Python", "SQL"}, p.Skills)
	assert.Equal(t, "Inventory API", p.Projects[0].Title)

	jsonPath := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"skills":["Go"],"tenthMarks":"88"}`), 0o644))
	p, err = LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, p.Skills)

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("cgpa: \"42\"\n"), 0o644))
	_, err = LoadFile(badPath)
	require.Error(t, err)
	assert.Contains(t, FieldErrors(err), "CandidateProfile.CGPA")

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
