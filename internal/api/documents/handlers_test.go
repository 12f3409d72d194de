package documents

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fankit/teamstudio/internal/assets"
	"github.com/fankit/teamstudio/internal/document"
	"github.com/fankit/teamstudio/internal/store"
)

const leagueBody = `{
  "leagues": [
    {
      "id": "premier",
      "logo_image": "logos/premier.png",
      "enabled": true,
      "teams": [
        {"id": "reds", "logo_image": "logos/reds.png", "enabled": true}
      ]
    }
  ]
}`

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	InitHandlers(store.New(time.Hour, nil), assets.NewResolver("https://cdn.example.com/"))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/documents", HandleUpload)
	mux.HandleFunc("GET /api/v1/documents/{id}", HandleGet)
	mux.HandleFunc("DELETE /api/v1/documents/{id}", HandleDiscard)
	mux.HandleFunc("POST /api/v1/documents/{id}/edits", HandleEdit)
	mux.HandleFunc("POST /api/v1/documents/{id}/teams/commit", HandleCommitTeam)
	mux.HandleFunc("POST /api/v1/documents/{id}/export", HandleExport)
	mux.HandleFunc("GET /api/v1/assets/resolve", HandleResolveAsset)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func uploadLeague(t *testing.T, mux *http.ServeMux) string {
	t.Helper()
	rec := doJSON(t, mux, http.MethodPost, "/api/v1/documents?kind=league", leagueBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("missing session_id")
	}
	return resp.SessionID
}

func TestUploadRejectsUnknownKind(t *testing.T) {
	mux := newTestMux(t)
	rec := doJSON(t, mux, http.MethodPost, "/api/v1/documents?kind=roster", leagueBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "kind must be league or team") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func multipartUpload(t *testing.T, filename, content string) (*strings.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return strings.NewReader(buf.String()), mw.FormDataContentType()
}

func TestUploadAcceptsMultipartBody(t *testing.T) {
	mux := newTestMux(t)
	body, contentType := multipartUpload(t, "leagues.json", leagueBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents?kind=league", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("missing session_id")
	}
}

func TestUploadRejectsMultipartNonJSONFilename(t *testing.T) {
	mux := newTestMux(t)
	body, contentType := multipartUpload(t, "leagues.csv", leagueBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents?kind=league", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), parseErrorMessage) {
		t.Fatalf("expected parse error message, got %s", rec.Body.String())
	}
}

func TestUploadRejectsNonJSONFilename(t *testing.T) {
	mux := newTestMux(t)
	rec := doJSON(t, mux, http.MethodPost, "/api/v1/documents?kind=league&filename=teams.csv", leagueBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != parseErrorMessage {
		t.Fatalf("unexpected error %q", resp.Error)
	}
}

func TestUploadRejectsMalformedJSON(t *testing.T) {
	mux := newTestMux(t)
	rec := doJSON(t, mux, http.MethodPost, "/api/v1/documents?kind=league", `{"leagues": [`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), parseErrorMessage) {
		t.Fatalf("expected parse error message, got %s", rec.Body.String())
	}
}

func TestUploadRejectsShapeViolations(t *testing.T) {
	mux := newTestMux(t)
	body := `{"leagues": [{"logo_image": "l.png", "enabled": true, "teams": []}]}`
	rec := doJSON(t, mux, http.MethodPost, "/api/v1/documents?kind=league", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", rec.Code)
	}

	var resp struct {
		Error  string                     `json:"error"`
		Errors []document.ValidationError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "Invalid JSON structure" {
		t.Fatalf("unexpected error %q", resp.Error)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Message != "League 1: Missing ID" {
		t.Fatalf("unexpected violations: %+v", resp.Errors)
	}
}

func TestUploadGetDiscardFlow(t *testing.T) {
	mux := newTestMux(t)
	id := uploadLeague(t, mux)

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/documents/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status %d", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodDelete, "/api/v1/documents/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("discard status %d", rec.Code)
	}
	// Discard is idempotent.
	rec = doJSON(t, mux, http.MethodDelete, "/api/v1/documents/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("repeat discard status %d", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/v1/documents/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after discard status %d", rec.Code)
	}
}

func TestEditThenExport(t *testing.T) {
	mux := newTestMux(t)
	id := uploadLeague(t, mux)
	editURL := fmt.Sprintf("/api/v1/documents/%s/edits", id)
	exportURL := fmt.Sprintf("/api/v1/documents/%s/export", id)

	// Blank a required field; the save gate must then block the export.
	rec := doJSON(t, mux, http.MethodPost, editURL,
		`{"op": "set_league_field", "league": 0, "field": "id", "value": ""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("edit status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodPost, exportURL, "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("export status %d, want 422", rec.Code)
	}
	var blocked struct {
		Errors []document.ValidationError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &blocked); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(blocked.Errors) != 1 || blocked.Errors[0].Path != "League 1" ||
		blocked.Errors[0].Message != "League ID is required" {
		t.Fatalf("unexpected violations: %+v", blocked.Errors)
	}

	// Restore the field and export for real.
	rec = doJSON(t, mux, http.MethodPost, editURL,
		`{"op": "set_league_field", "league": 0, "field": "id", "value": "premier"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("edit status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodPost, exportURL, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="leagues_and_teams.json"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "{\n  \"leagues\"") {
		t.Fatalf("expected 2-space indent, got %q", body[:30])
	}
	if !strings.HasSuffix(body, "\n") {
		t.Fatal("export must end with a newline")
	}
}

func TestCommitTeamFlow(t *testing.T) {
	mux := newTestMux(t)
	id := uploadLeague(t, mux)
	editURL := fmt.Sprintf("/api/v1/documents/%s/edits", id)
	commitURL := fmt.Sprintf("/api/v1/documents/%s/teams/commit", id)

	rec := doJSON(t, mux, http.MethodPost, editURL, `{"op": "add_team", "league": 0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add_team status %d: %s", rec.Code, rec.Body.String())
	}

	// Empty row: commit is blocked with per-field errors.
	rec = doJSON(t, mux, http.MethodPost, commitURL, `{"league": 0, "team": 1}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("commit status %d, want 422", rec.Code)
	}
	var blocked struct {
		RowErrors map[string]string `json:"row_errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &blocked); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if blocked.RowErrors["id"] != "Team ID is required" || blocked.RowErrors["logo_image"] != "Logo Path is required" {
		t.Fatalf("unexpected row errors: %v", blocked.RowErrors)
	}

	// A blocked row never reaches the export projection.
	rec = doJSON(t, mux, http.MethodPost, fmt.Sprintf("/api/v1/documents/%s/export", id), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"id": ""`) {
		t.Fatal("uncommitted row leaked into the export")
	}

	for _, edit := range []string{
		`{"op": "set_team_field", "league": 0, "team": 1, "field": "id", "value": "blues"}`,
		`{"op": "set_team_field", "league": 0, "team": 1, "field": "logo_image", "value": "logos/blues.png"}`,
	} {
		if rec := doJSON(t, mux, http.MethodPost, editURL, edit); rec.Code != http.StatusOK {
			t.Fatalf("edit status %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec = doJSON(t, mux, http.MethodPost, commitURL, `{"league": 0, "team": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("commit status %d: %s", rec.Code, rec.Body.String())
	}
	var committed struct {
		Committed bool `json:"committed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &committed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !committed.Committed {
		t.Fatal("expected committed response")
	}
}

func TestCommitRequiresIndices(t *testing.T) {
	mux := newTestMux(t)
	id := uploadLeague(t, mux)
	rec := doJSON(t, mux, http.MethodPost,
		fmt.Sprintf("/api/v1/documents/%s/teams/commit", id), `{"league": 0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestCommitOnTeamSessionConflicts(t *testing.T) {
	mux := newTestMux(t)
	rec := doJSON(t, mux, http.MethodPost, "/api/v1/documents?kind=team", teamUploadBody(t))
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, mux, http.MethodPost,
		fmt.Sprintf("/api/v1/documents/%s/teams/commit", resp.SessionID), `{"league": 0, "team": 0}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status %d, want 409", rec.Code)
	}
}

func TestIdeaQuestionDropdownEditsOverHTTP(t *testing.T) {
	mux := newTestMux(t)
	rec := doJSON(t, mux, http.MethodPost, "/api/v1/documents?kind=team", teamUploadBody(t))
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	editURL := fmt.Sprintf("/api/v1/documents/%s/edits", created.SessionID)

	for _, edit := range []string{
		`{"op": "add_idea_question", "section": "select_idea"}`,
		`{"op": "set_idea_question_field", "section": "select_idea", "question": 0, "field": "question_type", "value": "dropdown"}`,
		`{"op": "add_dropdown_option", "section": "select_idea", "question": 0}`,
		`{"op": "set_dropdown_option_field", "section": "select_idea", "question": 0, "index": 0, "field": "title", "value": "Category"}`,
	} {
		if rec := doJSON(t, mux, http.MethodPost, editURL, edit); rec.Code != http.StatusOK {
			t.Fatalf("edit %s: status %d: %s", edit, rec.Code, rec.Body.String())
		}
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/v1/documents/"+created.SessionID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status %d", rec.Code)
	}
	var fetched struct {
		Document document.Team `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	options := fetched.Document.Ideas.SelectIdea.Questions[0].DropdownOptions
	if len(options) != 1 || options[0].Title != "Category" {
		t.Fatalf("unexpected dropdown options: %+v", options)
	}
}

func TestEditRejectsUnknownOp(t *testing.T) {
	mux := newTestMux(t)
	id := uploadLeague(t, mux)
	rec := doJSON(t, mux, http.MethodPost,
		fmt.Sprintf("/api/v1/documents/%s/edits", id), `{"op": "shuffle"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestEditUnknownSessionIs404(t *testing.T) {
	mux := newTestMux(t)
	rec := doJSON(t, mux, http.MethodPost,
		"/api/v1/documents/ghost/edits", `{"op": "add_league"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestResolveAsset(t *testing.T) {
	mux := newTestMux(t)
	rec := doJSON(t, mux, http.MethodGet, "/api/v1/assets/resolve?path=/logos/reds.png", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp struct {
		URL    string `json:"url"`
		Hosted bool   `json:"hosted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.URL != "https://cdn.example.com/logos/reds.png" || resp.Hosted {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

// teamUploadBody builds a minimal team document that passes the upload
// gate.
func teamUploadBody(t *testing.T) string {
	t.Helper()
	raw := map[string]any{
		"id": "falcons", "name": "Falcons", "logo_image": "l.png",
		"survey_url": "https://example.com", "enabled": true,
		"welcome_details": map[string]any{
			"title": "t", "description": "d", "welcome_image": "w.png", "author": "a",
		},
		"team_home": map[string]any{
			"motto":         "m",
			"best_ideas":    map[string]any{"user_name": "a", "user_image": "a.png"},
			"most_missions": map[string]any{"user_name": "b", "user_image": "b.png"},
			"top_team_rank": []any{},
		},
		"missions": []any{},
		"ideas": map[string]any{
			"default_youtube_thumbnail_image": "t.png",
			"menu_list":                       map[string]any{},
			"play_ideas":                      []any{},
			"review_idea":                     map[string]any{},
			"select_idea":                     map[string]any{},
			"submit_idea":                     map[string]any{},
		},
	}
	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal team body: %v", err)
	}
	return string(data)
}
