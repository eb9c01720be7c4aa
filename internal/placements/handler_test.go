package placements

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/jobs"
)

const handlerCatalog = "title,company,location,salary,skills,experience,description\n" +
	"Backend Engineer,TCS,Pune,8 LPA,\"Python SQL\",2 years,APIs\n" +
	"Frontend Developer,Infosys,Bangalore,6 LPA,\"JavaScript React\",0 years,UI\n" +
	"Full Stack Developer,Wipro,Chennai,7 LPA,\"JavaScript React Node.js Python\",1 year,Web\n"

func newRouter(t *testing.T, raw string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogSvc := jobs.NewService(jobs.NewMemoryRepo(), nil, "")
	if raw != "" {
		if _, err := catalogSvc.Import(context.Background(), raw); err != nil {
			t.Fatalf("import: %v", err)
		}
	}
	r := gin.New()
	NewHandler(NewService(catalogSvc), 1<<20).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

type jobMatchBody struct {
	Job struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"job"`
	MatchPercentage    float64  `json:"matchPercentage"`
	RequiredPercentage float64  `json:"requiredPercentage"`
	Qualifies          bool     `json:"qualifies"`
	MissingSkills      []string `json:"missingSkills"`
}

func TestMatchesStrict(t *testing.T) {
	router := newRouter(t, handlerCatalog)

	resp := postJSON(router, "/api/v1/matches", `{"skills":["Python","SQL","JavaScript"]}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		CatalogVersion string         `json:"catalogVersion"`
		Matches        []jobMatchBody `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.CatalogVersion == "" || resp.Header().Get("X-Catalog-Version") != body.CatalogVersion {
		t.Fatalf("expected catalog version in body and header")
	}
	if len(body.Matches) != 1 || body.Matches[0].Job.Title != "Backend Engineer" {
		t.Fatalf("unexpected matches %+v", body.Matches)
	}
	m := body.Matches[0]
	if m.MatchPercentage != 100 || m.RequiredPercentage != 70 || !m.Qualifies {
		t.Fatalf("unexpected match fields %+v", m)
	}
	if m.MissingSkills == nil || len(m.MissingSkills) != 0 {
		t.Fatalf("expected empty missing skills array, got %v", m.MissingSkills)
	}
}

func TestMatchesExplore(t *testing.T) {
	router := newRouter(t, handlerCatalog)

	resp := postJSON(router, "/api/v1/matches/explore", `{"skills":["JavaScript","Python"]}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Matches []jobMatchBody `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	ids := make([]string, 0, len(body.Matches))
	for _, m := range body.Matches {
		ids = append(ids, m.Job.ID)
	}
	if strings.Join(ids, ",") != "3,1,2" {
		t.Fatalf("expected overlap order 3,1,2, got %v", ids)
	}
	if body.Matches[1].Qualifies {
		t.Fatalf("half coverage must not qualify")
	}
}

func TestPredictionsBackendEngineer(t *testing.T) {
	router := newRouter(t, handlerCatalog)

	resp := postJSON(router, "/api/v1/predictions", `{"name":"Asha","cgpa":"8.2","skills":["Python"]}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var fallback struct {
		Prediction struct {
			Kind               string   `json:"kind"`
			PredictedRole      string   `json:"predictedRole"`
			PredictedSalary    string   `json:"predictedSalaryRange"`
			PredictedCompanies []string `json:"predictedCompanies"`
			Confidence         float64  `json:"confidence"`
		} `json:"prediction"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&fallback); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fallback.Prediction.Kind != "fallback" || fallback.Prediction.PredictedRole != "Entry Level Position" {
		t.Fatalf("expected fallback, got %+v", fallback.Prediction)
	}
	if fallback.Prediction.PredictedSalary != "₹4,00,000 - ₹6,00,000" || fallback.Prediction.Confidence != 0.3 {
		t.Fatalf("unexpected fallback values %+v", fallback.Prediction)
	}

	resp = postJSON(router, "/api/v1/predictions", `{"skills":["Python","SQL"]}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if err := json.NewDecoder(resp.Body).Decode(&fallback); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fallback.Prediction.Kind != "match" || fallback.Prediction.PredictedRole != "Backend Engineer" {
		t.Fatalf("expected Backend Engineer, got %+v", fallback.Prediction)
	}
	if fallback.Prediction.Confidence != 0.95 {
		t.Fatalf("expected capped confidence, got %v", fallback.Prediction.Confidence)
	}
}

func TestPredictionsValidation(t *testing.T) {
	router := newRouter(t, handlerCatalog)

	resp := postJSON(router, "/api/v1/predictions", `{"cgpa":"11","skills":["Python"]}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "CandidateProfile.CGPA") {
		t.Fatalf("expected field details, got %s", resp.Body.String())
	}

	resp = postJSON(router, "/api/v1/matches", `{"skills":"Python"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-array skills, got %d", resp.Code)
	}
}

func TestScoringWithoutCatalog(t *testing.T) {
	router := newRouter(t, "")

	resp := postJSON(router, "/api/v1/matches", `{"skills":["Python"]}`)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"code":"catalog_empty"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func multipartUpload(t *testing.T, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="` + fileName + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestExtractRejectsUnsupportedFile(t *testing.T) {
	router := newRouter(t, handlerCatalog)

	body, ct := multipartUpload(t, "resume.txt", "text/plain", []byte("plain text resume"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/extract", body)
	req.Header.Set("Content-Type", ct)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestExtractRejectsTraversalFileName(t *testing.T) {
	router := newRouter(t, handlerCatalog)

	body, ct := multipartUpload(t, "..", "application/pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/extract", body)
	req.Header.Set("Content-Type", ct)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestExtractRequiresFile(t *testing.T) {
	router := newRouter(t, handlerCatalog)

	resp := postJSON(router, "/api/v1/profiles/extract", `{}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestExtractRejectsOversizedUpload(t *testing.T) {
	router := newRouter(t, handlerCatalog)

	body, ct := multipartUpload(t, "resume.pdf", "application/pdf", bytes.Repeat([]byte("a"), 2<<20))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/extract", body)
	req.Header.Set("Content-Type", ct)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.Code)
	}
}

func docxBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"word/document.xml":            `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>CV</w:t></w:r></w:p></w:body></w:document>`,
		"word/_rels/document.xml.rels": `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestExtractReturnsPlaceholderAndLooseMatches(t *testing.T) {
	router := newRouter(t, handlerCatalog)

	body, ct := multipartUpload(t, "resume.docx", "application/octet-stream", docxBytes(t))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/extract", body)
	req.Header.Set("Content-Type", ct)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload struct {
		MimeType string `json:"mimeType"`
		Profile  struct {
			Name   string   `json:"name"`
			Skills []string `json:"skills"`
		} `json:"profile"`
		Matches []jobMatchBody `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Profile.Name != "John Doe" || len(payload.Profile.Skills) != 4 {
		t.Fatalf("unexpected profile %+v", payload.Profile)
	}
	if !strings.HasSuffix(payload.MimeType, "wordprocessingml.document") {
		t.Fatalf("unexpected mime type %q", payload.MimeType)
	}
	// Overlap counts: Full Stack 4, Frontend 2, Backend 1.
	ids := make([]string, 0, len(payload.Matches))
	for _, m := range payload.Matches {
		ids = append(ids, m.Job.ID)
	}
	if strings.Join(ids, ",") != "3,2,1" {
		t.Fatalf("unexpected loose order %v", ids)
	}
}
