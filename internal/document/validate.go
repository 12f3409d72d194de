// internal/document/validate.go
package document

import "fmt"

// ValidationError is one path-qualified, user-displayable message. Path
// identifies the record ("League 2 - Team 1", "Ideas - Select"); upload
// errors embed the location in the message and leave Path empty.
type ValidationError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// Result is the outcome of a validation gate. Errors keep document
// traversal order and are never deduplicated.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

func valid() Result {
	return Result{Valid: true, Errors: []ValidationError{}}
}

func invalid(errs []ValidationError) Result {
	if len(errs) == 0 {
		return valid()
	}
	return Result{Valid: false, Errors: errs}
}

// ValidateUpload gates a freshly parsed, untyped JSON value before it is
// admitted into an editing session. It never panics: a wrong top-level
// shape short-circuits to a single structural error. Upload validation
// is deliberately looser than the save gate; empty teams and missions
// arrays pass here and are only rejected on save.
func ValidateUpload(data any, kind Kind) Result {
	switch kind {
	case KindTeam:
		return validateTeamUpload(data)
	default:
		return validateLeagueUpload(data)
	}
}

func validateLeagueUpload(data any) Result {
	obj, ok := asObject(data)
	if !ok {
		return invalid([]ValidationError{{Message: "Invalid JSON structure"}})
	}

	rawLeagues, ok := obj["leagues"].([]any)
	if !ok {
		return invalid([]ValidationError{{Message: "Leagues must be an array"}})
	}

	var errs []ValidationError
	push := func(format string, args ...any) {
		errs = append(errs, ValidationError{Message: fmt.Sprintf(format, args...)})
	}

	for i, raw := range rawLeagues {
		league, _ := asObject(raw)
		if !strPresent(league, "id") {
			push("League %d: Missing ID", i+1)
		}
		if !strPresent(league, "logo_image") {
			push("League %d: Missing logo image", i+1)
		}
		if !boolPresent(league, "enabled") {
			push("League %d: Missing enabled status", i+1)
		}

		teams, ok := league["teams"].([]any)
		if !ok {
			push("League %d: Teams must be an array", i+1)
			continue
		}
		for j, rawTeam := range teams {
			team, _ := asObject(rawTeam)
			if !strPresent(team, "id") {
				push("League %d, Team %d: Missing ID", i+1, j+1)
			}
			if !strPresent(team, "logo_image") {
				push("League %d, Team %d: Missing logo image", i+1, j+1)
			}
			if !boolPresent(team, "enabled") {
				push("League %d, Team %d: Missing enabled status", i+1, j+1)
			}
		}
	}

	return invalid(errs)
}

func validateTeamUpload(data any) Result {
	obj, ok := asObject(data)
	if !ok {
		return invalid([]ValidationError{{Message: "Invalid JSON structure"}})
	}

	var errs []ValidationError
	push := func(msg string) {
		errs = append(errs, ValidationError{Message: msg})
	}

	if !strPresent(obj, "id") {
		push("Missing team ID")
	}
	if !strPresent(obj, "name") {
		push("Missing team name")
	}
	if !strPresent(obj, "logo_image") {
		push("Missing team logo image")
	}
	if !strPresent(obj, "survey_url") {
		push("Missing survey URL")
	}
	if !boolPresent(obj, "enabled") {
		push("Missing enabled status")
	}

	if welcome, ok := asObject(obj["welcome_details"]); !ok {
		push("Missing welcome details")
	} else {
		if !strPresent(welcome, "title") {
			push("Missing welcome details title")
		}
		if !strPresent(welcome, "description") {
			push("Missing welcome details description")
		}
		if !strPresent(welcome, "welcome_image") {
			push("Missing welcome image")
		}
		if !strPresent(welcome, "author") {
			push("Missing welcome details author")
		}
	}

	if home, ok := asObject(obj["team_home"]); !ok {
		push("Missing team home section")
	} else {
		if !strPresent(home, "motto") {
			push("Missing team motto")
		}
		if _, ok := asObject(home["best_ideas"]); !ok {
			push("Missing best ideas section")
		}
		if _, ok := asObject(home["most_missions"]); !ok {
			push("Missing most missions section")
		}
		if _, ok := home["top_team_rank"].([]any); !ok {
			push("Top team rank must be an array")
		}
	}

	if _, ok := obj["missions"].([]any); !ok {
		push("Missions must be an array")
	}

	if ideas, ok := asObject(obj["ideas"]); !ok {
		push("Missing ideas section")
	} else {
		if !strPresent(ideas, "default_youtube_thumbnail_image") {
			push("Missing default YouTube thumbnail image")
		}
		if _, ok := asObject(ideas["menu_list"]); !ok {
			push("Missing menu list")
		}
		if _, ok := ideas["play_ideas"].([]any); !ok {
			push("Play ideas must be an array")
		}
		if _, ok := asObject(ideas["review_idea"]); !ok {
			push("Missing review idea section")
		}
		if _, ok := asObject(ideas["select_idea"]); !ok {
			push("Missing select idea section")
		}
		if _, ok := asObject(ideas["submit_idea"]); !ok {
			push("Missing submit idea section")
		}
	}

	return invalid(errs)
}

// ValidateLeagueSave gates a league document before export. Callers hand
// it the cleaned projection (uncommitted rows removed) so new rows never
// trip required-field checks. The document is never mutated.
func ValidateLeagueSave(doc LeagueDocument) Result {
	var errs []ValidationError
	push := func(path, msg string) {
		errs = append(errs, ValidationError{Path: path, Message: msg})
	}

	for i, league := range doc.Leagues {
		path := fmt.Sprintf("League %d", i+1)
		if league.ID == "" {
			push(path, "League ID is required")
		}
		if league.LogoImage == "" {
			push(path, "League Logo Image is required")
		}

		if len(league.Teams) == 0 {
			push(path, "At least one team is required")
			continue
		}
		for j, team := range league.Teams {
			teamPath := fmt.Sprintf("League %d - Team %d", i+1, j+1)
			if team.ID == "" {
				push(teamPath, "Team ID is required")
			}
			if team.LogoImage == "" {
				push(teamPath, "Team Logo Image is required")
			}
		}
	}

	return invalid(errs)
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func strPresent(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && s != ""
}

func boolPresent(m map[string]any, key string) bool {
	_, ok := m[key].(bool)
	return ok
}
