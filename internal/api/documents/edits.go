// internal/api/documents/edits.go
package documents

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fankit/teamstudio/internal/api/apiutil"
	"github.com/fankit/teamstudio/internal/document"
)

// editRequest carries one reconciler operation. Indices are pointers so
// a missing index is distinguishable from index zero.
type editRequest struct {
	Op       string `json:"op"`
	Section  string `json:"section,omitempty"`
	Member   string `json:"member,omitempty"`
	League   *int   `json:"league,omitempty"`
	Team     *int   `json:"team,omitempty"`
	Mission  *int   `json:"mission,omitempty"`
	Question *int   `json:"question,omitempty"`
	Index    *int   `json:"index,omitempty"`
	Field    string `json:"field,omitempty"`
	Value    any    `json:"value,omitempty"`
}

type editResponse struct {
	Document any `json:"document"`
}

// POST /api/v1/documents/{id}/edits
// Applies a single field-level edit and returns the replacement
// document. The store swap makes concurrent edits to one session
// last-write-wins.
func HandleEdit(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	id := r.PathValue(sessionIDPathKey)

	var req editRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Op == "" {
		http.Error(w, "op is required", http.StatusBadRequest)
		return
	}

	kind, err := sessions.Kind(id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	var payload any
	switch kind {
	case document.KindLeague:
		doc, err := sessions.Leagues(id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		updated, err := applyLeagueEdit(doc, req)
		if err != nil {
			writeEditError(w, r, err)
			return
		}
		if err := sessions.UpdateLeagues(id, updated); err != nil {
			writeStoreError(w, r, err)
			return
		}
		payload = updated
	case document.KindTeam:
		team, err := sessions.Team(id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		updated, err := applyTeamEdit(team, req)
		if err != nil {
			writeEditError(w, r, err)
			return
		}
		if err := sessions.UpdateTeam(id, updated); err != nil {
			writeStoreError(w, r, err)
			return
		}
		payload = updated
	}

	logger.Debug().Str("op", req.Op).Str("session_id", id).Msg("Edit applied")
	apiutil.WriteJSON(w, http.StatusOK, editResponse{Document: payload})
}

func applyLeagueEdit(doc document.LeagueDocument, req editRequest) (document.LeagueDocument, error) {
	switch req.Op {
	case "add_league":
		return document.AddLeague(doc), nil
	case "remove_league":
		index, err := requireIndex(req.League, "league")
		if err != nil {
			return doc, err
		}
		return document.RemoveLeague(doc, index)
	case "remove_league_by_id":
		id, ok := req.Value.(string)
		if !ok {
			return doc, fmt.Errorf("value must be a league id: %w", document.ErrInvalidValue)
		}
		return document.RemoveLeagueByID(doc, id), nil
	case "set_league_field":
		index, err := requireIndex(req.League, "league")
		if err != nil {
			return doc, err
		}
		return document.SetLeagueField(doc, index, req.Field, req.Value)
	case "add_team":
		index, err := requireIndex(req.League, "league")
		if err != nil {
			return doc, err
		}
		return document.AddTeam(doc, index)
	case "remove_team":
		league, team, err := requireIndexes(req.League, "league", req.Team, "team")
		if err != nil {
			return doc, err
		}
		return document.RemoveTeam(doc, league, team)
	case "set_team_field":
		league, team, err := requireIndexes(req.League, "league", req.Team, "team")
		if err != nil {
			return doc, err
		}
		return document.SetTeamField(doc, league, team, req.Field, req.Value)
	default:
		return doc, fmt.Errorf("unknown league op %q: %w", req.Op, document.ErrUnknownField)
	}
}

func applyTeamEdit(team document.Team, req editRequest) (document.Team, error) {
	switch req.Op {
	case "set_field":
		return document.SetTeamScalar(team, req.Field, req.Value)
	case "set_welcome_field":
		return document.SetWelcomeField(team, req.Field, req.Value)
	case "set_motto":
		return document.SetMotto(team, req.Value)
	case "set_home_member":
		return document.SetHomeMember(team, req.Member, req.Field, req.Value)
	case "add_top_rank":
		return document.AddTopRank(team), nil
	case "remove_top_rank":
		index, err := requireIndex(req.Index, "index")
		if err != nil {
			return team, err
		}
		return document.RemoveTopRank(team, index)
	case "set_top_rank_field":
		index, err := requireIndex(req.Index, "index")
		if err != nil {
			return team, err
		}
		return document.SetTopRankField(team, index, req.Field, req.Value)

	case "add_mission":
		return document.AddMission(team), nil
	case "remove_mission":
		index, err := requireIndex(req.Mission, "mission")
		if err != nil {
			return team, err
		}
		return document.RemoveMission(team, index)
	case "set_mission_field":
		index, err := requireIndex(req.Mission, "mission")
		if err != nil {
			return team, err
		}
		return document.SetMissionField(team, index, req.Field, req.Value)

	case "add_question":
		index, err := requireIndex(req.Mission, "mission")
		if err != nil {
			return team, err
		}
		return document.AddMissionQuestion(team, index)
	case "remove_question":
		mission, question, err := requireIndexes(req.Mission, "mission", req.Question, "question")
		if err != nil {
			return team, err
		}
		return document.RemoveMissionQuestion(team, mission, question)
	case "set_question_field":
		mission, question, err := requireIndexes(req.Mission, "mission", req.Question, "question")
		if err != nil {
			return team, err
		}
		return document.SetMissionQuestionField(team, mission, question, req.Field, req.Value)

	// Dropdown-option and image-selection ops address a question in a
	// mission (mission+question indices) or, when section is set, in an
	// idea section (section+question).
	case "add_dropdown_option":
		if req.Section != "" {
			question, err := requireIndex(req.Question, "question")
			if err != nil {
				return team, err
			}
			return document.AddIdeaDropdownOption(team, req.Section, question)
		}
		mission, question, err := requireIndexes(req.Mission, "mission", req.Question, "question")
		if err != nil {
			return team, err
		}
		return document.AddDropdownOption(team, mission, question)
	case "remove_dropdown_option":
		index, err := requireIndex(req.Index, "index")
		if err != nil {
			return team, err
		}
		if req.Section != "" {
			question, err := requireIndex(req.Question, "question")
			if err != nil {
				return team, err
			}
			return document.RemoveIdeaDropdownOption(team, req.Section, question, index)
		}
		mission, question, err := requireIndexes(req.Mission, "mission", req.Question, "question")
		if err != nil {
			return team, err
		}
		return document.RemoveDropdownOption(team, mission, question, index)
	case "set_dropdown_option_field":
		index, err := requireIndex(req.Index, "index")
		if err != nil {
			return team, err
		}
		if req.Section != "" {
			question, err := requireIndex(req.Question, "question")
			if err != nil {
				return team, err
			}
			return document.SetIdeaDropdownOptionField(team, req.Section, question, index, req.Field, req.Value)
		}
		mission, question, err := requireIndexes(req.Mission, "mission", req.Question, "question")
		if err != nil {
			return team, err
		}
		return document.SetDropdownOptionField(team, mission, question, index, req.Field, req.Value)

	case "add_image_selection":
		if req.Section != "" {
			question, err := requireIndex(req.Question, "question")
			if err != nil {
				return team, err
			}
			return document.AddIdeaImageSelection(team, req.Section, question)
		}
		mission, question, err := requireIndexes(req.Mission, "mission", req.Question, "question")
		if err != nil {
			return team, err
		}
		return document.AddImageSelection(team, mission, question)
	case "remove_image_selection":
		index, err := requireIndex(req.Index, "index")
		if err != nil {
			return team, err
		}
		if req.Section != "" {
			question, err := requireIndex(req.Question, "question")
			if err != nil {
				return team, err
			}
			return document.RemoveIdeaImageSelection(team, req.Section, question, index)
		}
		mission, question, err := requireIndexes(req.Mission, "mission", req.Question, "question")
		if err != nil {
			return team, err
		}
		return document.RemoveImageSelection(team, mission, question, index)
	case "set_image_selection_field":
		index, err := requireIndex(req.Index, "index")
		if err != nil {
			return team, err
		}
		if req.Section != "" {
			question, err := requireIndex(req.Question, "question")
			if err != nil {
				return team, err
			}
			return document.SetIdeaImageSelectionField(team, req.Section, question, index, req.Field, req.Value)
		}
		mission, question, err := requireIndexes(req.Mission, "mission", req.Question, "question")
		if err != nil {
			return team, err
		}
		return document.SetImageSelectionField(team, mission, question, index, req.Field, req.Value)

	case "set_ideas_thumbnail":
		return document.SetIdeasThumbnail(team, req.Value)
	case "set_menu_field":
		return document.SetMenuListField(team, req.Field, req.Value)
	case "add_play_idea":
		return document.AddPlayIdea(team), nil
	case "remove_play_idea":
		index, err := requireIndex(req.Index, "index")
		if err != nil {
			return team, err
		}
		return document.RemovePlayIdea(team, index)
	case "set_play_idea":
		index, err := requireIndex(req.Index, "index")
		if err != nil {
			return team, err
		}
		return document.SetPlayIdea(team, index, req.Value)

	case "set_idea_field":
		return document.SetIdeaSectionField(team, req.Section, req.Field, req.Value)
	case "add_idea_question":
		return document.AddIdeaQuestion(team, req.Section)
	case "remove_idea_question":
		index, err := requireIndex(req.Question, "question")
		if err != nil {
			return team, err
		}
		return document.RemoveIdeaQuestion(team, req.Section, index)
	case "set_idea_question_field":
		index, err := requireIndex(req.Question, "question")
		if err != nil {
			return team, err
		}
		return document.SetIdeaQuestionField(team, req.Section, index, req.Field, req.Value)

	default:
		return team, fmt.Errorf("unknown team op %q: %w", req.Op, document.ErrUnknownField)
	}
}

func requireIndex(p *int, name string) (int, error) {
	if p == nil {
		return 0, fmt.Errorf("%s index is required: %w", name, document.ErrIndexOutOfRange)
	}
	return *p, nil
}

func requireIndexes(a *int, aName string, b *int, bName string) (int, int, error) {
	first, err := requireIndex(a, aName)
	if err != nil {
		return 0, 0, err
	}
	second, err := requireIndex(b, bName)
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}
