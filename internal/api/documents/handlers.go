// internal/api/documents/handlers.go
package documents

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fankit/teamstudio/internal/api/apiutil"
	"github.com/fankit/teamstudio/internal/assets"
	"github.com/fankit/teamstudio/internal/document"
	"github.com/fankit/teamstudio/internal/store"
)

const (
	kindQueryKey     = "kind"
	filenameQueryKey = "filename"
	pathQueryKey     = "path"
	sessionIDPathKey = "id"
	uploadFormKey    = "file"
	maxUploadBytes   = 8 << 20

	parseErrorMessage = "Error parsing JSON file. Please ensure it is a valid JSON file."
	leagueExportName  = "leagues_and_teams.json"
)

var (
	sessions *store.Store
	resolver assets.Resolver
)

// InitHandlers must be called during server startup before handling
// requests.
func InitHandlers(s *store.Store, r assets.Resolver) {
	sessions = s
	resolver = r
}

type uploadResponse struct {
	SessionID string        `json:"session_id"`
	Kind      document.Kind `json:"kind"`
	Document  any           `json:"document"`
}

type errorResponse struct {
	Error  string                     `json:"error"`
	Errors []document.ValidationError `json:"errors,omitempty"`
}

// POST /api/v1/documents?kind=league|team
// The body is the raw content of the uploaded .json file. The upload
// gate runs against the untyped parse; the document is only admitted
// into a session when it passes.
func HandleUpload(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	kind, err := kindFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, uploadName, err := readUploadBody(r)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read upload body")
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	if name := r.URL.Query().Get(filenameQueryKey); name != "" {
		uploadName = name
	}

	// Loose extension check, mirroring the file picker's accept filter.
	if uploadName != "" && !strings.HasSuffix(strings.ToLower(uploadName), ".json") {
		apiutil.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: parseErrorMessage})
		return
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		logger.Warn().Err(err).Msg("Upload is not valid JSON")
		apiutil.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: parseErrorMessage})
		return
	}

	if result := document.ValidateUpload(raw, kind); !result.Valid {
		logger.Warn().Int("violations", len(result.Errors)).Str("kind", string(kind)).
			Msg("Upload rejected by shape validation")
		apiutil.WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "Invalid JSON structure",
			Errors: result.Errors,
		})
		return
	}

	var resp uploadResponse
	switch kind {
	case document.KindLeague:
		var doc document.LeagueDocument
		if err := json.Unmarshal(body, &doc); err != nil {
			apiutil.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: parseErrorMessage})
			return
		}
		doc = document.NormalizeLeagues(doc)
		resp = uploadResponse{SessionID: sessions.PutLeagues(doc), Kind: kind, Document: doc}
	case document.KindTeam:
		var team document.Team
		if err := json.Unmarshal(body, &team); err != nil {
			apiutil.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: parseErrorMessage})
			return
		}
		team = document.NormalizeTeam(team)
		resp = uploadResponse{SessionID: sessions.PutTeam(team), Kind: kind, Document: team}
	}

	logger.Info().Str("session_id", resp.SessionID).Str("kind", string(kind)).Msg("Document admitted")
	apiutil.WriteJSON(w, http.StatusCreated, resp)
}

// GET /api/v1/documents/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue(sessionIDPathKey)

	kind, err := sessions.Kind(id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	switch kind {
	case document.KindLeague:
		doc, err := sessions.Leagues(id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		apiutil.WriteJSON(w, http.StatusOK, uploadResponse{SessionID: id, Kind: kind, Document: doc})
	case document.KindTeam:
		team, err := sessions.Team(id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		apiutil.WriteJSON(w, http.StatusOK, uploadResponse{SessionID: id, Kind: kind, Document: team})
	}
}

// DELETE /api/v1/documents/{id}
// Discard is idempotent; discarding an unknown session still succeeds.
func HandleDiscard(w http.ResponseWriter, r *http.Request) {
	sessions.Delete(r.PathValue(sessionIDPathKey))
	w.WriteHeader(http.StatusNoContent)
}

type commitRequest struct {
	League *int `json:"league"`
	Team   *int `json:"team"`
}

type commitResponse struct {
	Committed bool                    `json:"committed"`
	RowErrors map[string]string       `json:"row_errors,omitempty"`
	Document  document.LeagueDocument `json:"document"`
}

// POST /api/v1/documents/{id}/teams/commit
// Validates a single new row. Failure attaches errors to that row only
// and leaves the rest of the document untouched.
func HandleCommitTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	id := r.PathValue(sessionIDPathKey)

	var req commitRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.League == nil || req.Team == nil {
		http.Error(w, "league and team indices are required", http.StatusBadRequest)
		return
	}

	doc, err := sessions.Leagues(id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	updated, rowErrors, err := document.CommitTeam(doc, *req.League, *req.Team)
	if err != nil {
		writeEditError(w, r, err)
		return
	}
	if err := sessions.UpdateLeagues(id, updated); err != nil {
		writeStoreError(w, r, err)
		return
	}

	if len(rowErrors) > 0 {
		logger.Info().Int("league", *req.League).Int("team", *req.Team).
			Msg("Team row commit blocked by validation")
		apiutil.WriteJSON(w, http.StatusUnprocessableEntity, commitResponse{
			RowErrors: rowErrors,
			Document:  updated,
		})
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, commitResponse{Committed: true, Document: updated})
}

// POST /api/v1/documents/{id}/export
// Runs the save gate over the export projection. Validation failure
// blocks the save and leaves the session untouched; success streams the
// 2-space-indented document as a file download.
func HandleExport(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	id := r.PathValue(sessionIDPathKey)

	kind, err := sessions.Kind(id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	var (
		result   document.Result
		filename string
		payload  any
	)
	switch kind {
	case document.KindLeague:
		doc, err := sessions.Leagues(id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		clean := document.CleanLeagues(doc)
		result = document.ValidateLeagueSave(clean)
		filename = leagueExportName
		payload = clean
	case document.KindTeam:
		team, err := sessions.Team(id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		result = document.ValidateTeamSave(team)
		filename = team.ID + ".json"
		payload = team
	}

	if !result.Valid {
		logger.Info().Int("violations", len(result.Errors)).Str("kind", string(kind)).
			Msg("Export blocked by validation")
		apiutil.WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "Validation failed",
			Errors: result.Errors,
		})
		return
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to serialize document")
		http.Error(w, "Failed to serialize document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
	w.Write([]byte("\n"))
}

type resolveResponse struct {
	URL    string `json:"url"`
	Hosted bool   `json:"hosted"`
}

// GET /api/v1/assets/resolve?path=...
// Preview-URL construction for the client; no existence check is made.
func HandleResolveAsset(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get(pathQueryKey)
	apiutil.WriteJSON(w, http.StatusOK, resolveResponse{
		URL:    resolver.Resolve(path),
		Hosted: resolver.Hosted(path),
	})
}

// readUploadBody accepts the document either as the raw request body or
// as a multipart "file" part, returning the content and, for multipart,
// the client-side filename.
func readUploadBody(r *http.Request) ([]byte, string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile(uploadFormKey)
		if err != nil {
			return nil, "", err
		}
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return nil, "", err
		}
		return data, header.Filename, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		return nil, "", err
	}
	return data, "", nil
}

func kindFromQuery(r *http.Request) (document.Kind, error) {
	switch r.URL.Query().Get(kindQueryKey) {
	case "league":
		return document.KindLeague, nil
	case "team":
		return document.KindTeam, nil
	default:
		return "", apiutil.FieldError{Field: kindQueryKey, Reason: "must be league or team"}
	}
}

// storeError and editError map domain failures to a HandlerError;
// writeHandlerError renders it and logs server-side failures.

func storeError(err error) apiutil.HandlerError {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Session not found", Err: err}
	case errors.Is(err, store.ErrKindMismatch):
		return apiutil.HandlerError{Status: http.StatusConflict, Message: "Session holds a different document kind", Err: err}
	default:
		return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error", Err: err}
	}
}

func editError(err error) apiutil.HandlerError {
	switch {
	case errors.Is(err, document.ErrIndexOutOfRange),
		errors.Is(err, document.ErrUnknownField),
		errors.Is(err, document.ErrInvalidValue),
		errors.Is(err, document.ErrUnknownQuestionType),
		errors.Is(err, document.ErrUnknownSection),
		errors.Is(err, document.ErrImageSelectionFull):
		return apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	default:
		return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error", Err: err}
	}
}

func writeHandlerError(w http.ResponseWriter, r *http.Request, herr apiutil.HandlerError) {
	if herr.Status >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(herr.Err).Msg("Request failed")
	}
	http.Error(w, herr.Message, herr.Status)
}

func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, r, storeError(err))
}

func writeEditError(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, r, editError(err))
}
