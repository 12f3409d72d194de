// internal/document/edit.go
package document

import "fmt"

// Edit operations. Every function takes the current document by value
// and returns a replacement built by shallow-copying each container on
// the path from the edited leaf to the root; sibling data is shared
// untouched. Nothing here mutates its input.

// --- league document ---

// AddLeague appends an empty, enabled league with no teams.
func AddLeague(doc LeagueDocument) LeagueDocument {
	leagues := append(append([]League(nil), doc.Leagues...), NewLeague())
	return LeagueDocument{Leagues: leagues}
}

// RemoveLeague excises the league at index, closing the gap.
func RemoveLeague(doc LeagueDocument, index int) (LeagueDocument, error) {
	if index < 0 || index >= len(doc.Leagues) {
		return doc, fmt.Errorf("league %d: %w", index, ErrIndexOutOfRange)
	}
	leagues := make([]League, 0, len(doc.Leagues)-1)
	leagues = append(leagues, doc.Leagues[:index]...)
	leagues = append(leagues, doc.Leagues[index+1:]...)
	return LeagueDocument{Leagues: leagues}, nil
}

// RemoveLeagueByID drops every league whose id matches. Ids are not
// unique by contract, so this may remove more than one row; a miss is
// not an error.
func RemoveLeagueByID(doc LeagueDocument, id string) LeagueDocument {
	leagues := make([]League, 0, len(doc.Leagues))
	for _, league := range doc.Leagues {
		if league.ID != id {
			leagues = append(leagues, league)
		}
	}
	return LeagueDocument{Leagues: leagues}
}

// SetLeagueField updates one scalar on a league. Field names are the
// wire names: id, logo_image, enabled.
func SetLeagueField(doc LeagueDocument, index int, field string, value any) (LeagueDocument, error) {
	league, err := leagueAt(doc, index)
	if err != nil {
		return doc, err
	}

	switch field {
	case "id":
		league.ID, err = stringValue(field, value)
	case "logo_image":
		league.LogoImage, err = stringValue(field, value)
	case "enabled":
		league.Enabled, err = boolValue(field, value)
	default:
		return doc, fmt.Errorf("league field %q: %w", field, ErrUnknownField)
	}
	if err != nil {
		return doc, err
	}
	return withLeague(doc, index, league), nil
}

// AddTeam appends an uncommitted row to a league. The row starts
// enabled, flagged IsNew, and stays out of document-level validation and
// the export projection until CommitTeam succeeds.
func AddTeam(doc LeagueDocument, leagueIndex int) (LeagueDocument, error) {
	league, err := leagueAt(doc, leagueIndex)
	if err != nil {
		return doc, err
	}
	league.Teams = append(append([]BasicTeam(nil), league.Teams...), NewBasicTeam())
	return withLeague(doc, leagueIndex, league), nil
}

// RemoveTeam excises the team row at teamIndex within a league.
func RemoveTeam(doc LeagueDocument, leagueIndex, teamIndex int) (LeagueDocument, error) {
	league, err := leagueAt(doc, leagueIndex)
	if err != nil {
		return doc, err
	}
	if teamIndex < 0 || teamIndex >= len(league.Teams) {
		return doc, fmt.Errorf("team %d: %w", teamIndex, ErrIndexOutOfRange)
	}
	teams := make([]BasicTeam, 0, len(league.Teams)-1)
	teams = append(teams, league.Teams[:teamIndex]...)
	teams = append(teams, league.Teams[teamIndex+1:]...)
	league.Teams = teams
	return withLeague(doc, leagueIndex, league), nil
}

// SetTeamField updates one scalar on a team row: id, logo_image, enabled.
func SetTeamField(doc LeagueDocument, leagueIndex, teamIndex int, field string, value any) (LeagueDocument, error) {
	league, err := leagueAt(doc, leagueIndex)
	if err != nil {
		return doc, err
	}
	if teamIndex < 0 || teamIndex >= len(league.Teams) {
		return doc, fmt.Errorf("team %d: %w", teamIndex, ErrIndexOutOfRange)
	}
	team := league.Teams[teamIndex]

	switch field {
	case "id":
		team.ID, err = stringValue(field, value)
	case "logo_image":
		team.LogoImage, err = stringValue(field, value)
	case "enabled":
		team.Enabled, err = boolValue(field, value)
	default:
		return doc, fmt.Errorf("team field %q: %w", field, ErrUnknownField)
	}
	if err != nil {
		return doc, err
	}

	teams := append([]BasicTeam(nil), league.Teams...)
	teams[teamIndex] = team
	league.Teams = teams
	return withLeague(doc, leagueIndex, league), nil
}

// CommitTeam validates a single row's required fields. On success the
// IsNew flag and any row errors are cleared and the row joins normal
// document-level validation. On failure per-field messages are attached
// to the row, IsNew is kept, and the rest of the document is untouched.
// The returned map is nil when the commit succeeded.
func CommitTeam(doc LeagueDocument, leagueIndex, teamIndex int) (LeagueDocument, map[string]string, error) {
	league, err := leagueAt(doc, leagueIndex)
	if err != nil {
		return doc, nil, err
	}
	if teamIndex < 0 || teamIndex >= len(league.Teams) {
		return doc, nil, fmt.Errorf("team %d: %w", teamIndex, ErrIndexOutOfRange)
	}
	team := league.Teams[teamIndex]

	rowErrors := map[string]string{}
	if team.ID == "" {
		rowErrors["id"] = "Team ID is required"
	}
	if team.LogoImage == "" {
		rowErrors["logo_image"] = "Logo Path is required"
	}

	if len(rowErrors) > 0 {
		team.RowErrors = rowErrors
	} else {
		team.IsNew = false
		team.RowErrors = nil
		rowErrors = nil
	}

	teams := append([]BasicTeam(nil), league.Teams...)
	teams[teamIndex] = team
	league.Teams = teams
	return withLeague(doc, leagueIndex, league), rowErrors, nil
}

// CleanLeagues is the export projection: uncommitted rows are dropped
// and transient row state never reaches the save gate or the file.
func CleanLeagues(doc LeagueDocument) LeagueDocument {
	leagues := make([]League, len(doc.Leagues))
	for i, league := range doc.Leagues {
		teams := make([]BasicTeam, 0, len(league.Teams))
		for _, team := range league.Teams {
			if team.IsNew {
				continue
			}
			team.RowErrors = nil
			teams = append(teams, team)
		}
		league.Teams = teams
		leagues[i] = league
	}
	return LeagueDocument{Leagues: leagues}
}

func leagueAt(doc LeagueDocument, index int) (League, error) {
	if index < 0 || index >= len(doc.Leagues) {
		return League{}, fmt.Errorf("league %d: %w", index, ErrIndexOutOfRange)
	}
	return doc.Leagues[index], nil
}

func withLeague(doc LeagueDocument, index int, league League) LeagueDocument {
	leagues := append([]League(nil), doc.Leagues...)
	leagues[index] = league
	return LeagueDocument{Leagues: leagues}
}

// --- team document ---

// SetTeamScalar updates a top-level team field: id, name, logo_image,
// survey_url, enabled.
func SetTeamScalar(team Team, field string, value any) (Team, error) {
	var err error
	switch field {
	case "id":
		team.ID, err = stringValue(field, value)
	case "name":
		team.Name, err = stringValue(field, value)
	case "logo_image":
		team.LogoImage, err = stringValue(field, value)
	case "survey_url":
		team.SurveyURL, err = stringValue(field, value)
	case "enabled":
		team.Enabled, err = boolValue(field, value)
	default:
		return team, fmt.Errorf("team field %q: %w", field, ErrUnknownField)
	}
	return team, err
}

// SetWelcomeField updates one welcome_details field.
func SetWelcomeField(team Team, field string, value any) (Team, error) {
	text, err := stringValue(field, value)
	if err != nil {
		return team, err
	}
	switch field {
	case "title":
		team.WelcomeDetails.Title = text
	case "description":
		team.WelcomeDetails.Description = text
	case "welcome_image":
		team.WelcomeDetails.WelcomeImage = text
	case "author":
		team.WelcomeDetails.Author = text
	default:
		return team, fmt.Errorf("welcome field %q: %w", field, ErrUnknownField)
	}
	return team, nil
}

// SetMotto updates the team home motto.
func SetMotto(team Team, value any) (Team, error) {
	text, err := stringValue("motto", value)
	if err != nil {
		return team, err
	}
	team.TeamHome.Motto = text
	return team, nil
}

// SetHomeMember updates a field of best_ideas or most_missions.
func SetHomeMember(team Team, member, field string, value any) (Team, error) {
	text, err := stringValue(field, value)
	if err != nil {
		return team, err
	}

	var target *Member
	switch member {
	case "best_ideas":
		target = &team.TeamHome.BestIdeas
	case "most_missions":
		target = &team.TeamHome.MostMissions
	default:
		return team, fmt.Errorf("home member %q: %w", member, ErrUnknownField)
	}

	switch field {
	case "user_name":
		target.UserName = text
	case "user_image":
		target.UserImage = text
	default:
		return team, fmt.Errorf("member field %q: %w", field, ErrUnknownField)
	}
	return team, nil
}

// AddTopRank appends an empty entry to top_team_rank.
func AddTopRank(team Team) Team {
	team.TeamHome.TopTeamRank = append(
		append([]Member(nil), team.TeamHome.TopTeamRank...), Member{})
	return team
}

// RemoveTopRank excises the top_team_rank entry at index.
func RemoveTopRank(team Team, index int) (Team, error) {
	ranks := team.TeamHome.TopTeamRank
	if index < 0 || index >= len(ranks) {
		return team, fmt.Errorf("top rank %d: %w", index, ErrIndexOutOfRange)
	}
	out := make([]Member, 0, len(ranks)-1)
	out = append(out, ranks[:index]...)
	out = append(out, ranks[index+1:]...)
	team.TeamHome.TopTeamRank = out
	return team, nil
}

// SetTopRankField updates one field of a top_team_rank entry.
func SetTopRankField(team Team, index int, field string, value any) (Team, error) {
	ranks := team.TeamHome.TopTeamRank
	if index < 0 || index >= len(ranks) {
		return team, fmt.Errorf("top rank %d: %w", index, ErrIndexOutOfRange)
	}
	text, err := stringValue(field, value)
	if err != nil {
		return team, err
	}
	entry := ranks[index]
	switch field {
	case "user_name":
		entry.UserName = text
	case "user_image":
		entry.UserImage = text
	default:
		return team, fmt.Errorf("rank field %q: %w", field, ErrUnknownField)
	}
	out := append([]Member(nil), ranks...)
	out[index] = entry
	team.TeamHome.TopTeamRank = out
	return team, nil
}

// AddMission appends an empty mission with an empty question list.
func AddMission(team Team) Team {
	team.Missions = append(append([]Mission(nil), team.Missions...), NewMission())
	return team
}

// RemoveMission excises the mission at index.
func RemoveMission(team Team, index int) (Team, error) {
	if index < 0 || index >= len(team.Missions) {
		return team, fmt.Errorf("mission %d: %w", index, ErrIndexOutOfRange)
	}
	missions := make([]Mission, 0, len(team.Missions)-1)
	missions = append(missions, team.Missions[:index]...)
	missions = append(missions, team.Missions[index+1:]...)
	team.Missions = missions
	return team, nil
}

// SetMissionField updates one scalar on a mission.
func SetMissionField(team Team, index int, field string, value any) (Team, error) {
	mission, err := missionAt(team, index)
	if err != nil {
		return team, err
	}
	text, err := stringValue(field, value)
	if err != nil {
		return team, err
	}

	switch field {
	case "id":
		mission.ID = text
	case "title":
		mission.Title = text
	case "description":
		mission.Description = text
	case "image":
		mission.Image = text
	case "focus_type":
		mission.FocusType = text
	case "level":
		mission.Level = text
	case "completion_msg":
		mission.CompletionMsg = text
	case "completion_image":
		mission.CompletionImage = text
	default:
		return team, fmt.Errorf("mission field %q: %w", field, ErrUnknownField)
	}
	return withMission(team, index, mission), nil
}

// AddMissionQuestion appends the empty question template to a mission.
func AddMissionQuestion(team Team, missionIndex int) (Team, error) {
	mission, err := missionAt(team, missionIndex)
	if err != nil {
		return team, err
	}
	mission.Questions = append(append([]Question(nil), mission.Questions...), NewQuestion())
	return withMission(team, missionIndex, mission), nil
}

// RemoveMissionQuestion excises a question from a mission.
func RemoveMissionQuestion(team Team, missionIndex, questionIndex int) (Team, error) {
	mission, err := missionAt(team, missionIndex)
	if err != nil {
		return team, err
	}
	questions, err := removeQuestion(mission.Questions, questionIndex)
	if err != nil {
		return team, err
	}
	mission.Questions = questions
	return withMission(team, missionIndex, mission), nil
}

// SetMissionQuestionField updates one field on a mission question.
func SetMissionQuestionField(team Team, missionIndex, questionIndex int, field string, value any) (Team, error) {
	mission, err := missionAt(team, missionIndex)
	if err != nil {
		return team, err
	}
	questions, err := setQuestionAt(mission.Questions, questionIndex, field, value)
	if err != nil {
		return team, err
	}
	mission.Questions = questions
	return withMission(team, missionIndex, mission), nil
}

func missionAt(team Team, index int) (Mission, error) {
	if index < 0 || index >= len(team.Missions) {
		return Mission{}, fmt.Errorf("mission %d: %w", index, ErrIndexOutOfRange)
	}
	return team.Missions[index], nil
}

func withMission(team Team, index int, mission Mission) Team {
	missions := append([]Mission(nil), team.Missions...)
	missions[index] = mission
	team.Missions = missions
	return team
}

// --- ideas ---

// SetIdeasThumbnail updates the default YouTube thumbnail image.
func SetIdeasThumbnail(team Team, value any) (Team, error) {
	text, err := stringValue("default_youtube_thumbnail_image", value)
	if err != nil {
		return team, err
	}
	team.Ideas.DefaultYoutubeThumbnailImage = text
	return team, nil
}

// SetMenuListField updates one of the six menu_list labels.
func SetMenuListField(team Team, field string, value any) (Team, error) {
	text, err := stringValue(field, value)
	if err != nil {
		return team, err
	}
	menu := &team.Ideas.MenuList
	switch field {
	case "review_title":
		menu.ReviewTitle = text
	case "review_description":
		menu.ReviewDescription = text
	case "select_title":
		menu.SelectTitle = text
	case "select_description":
		menu.SelectDescription = text
	case "submit_title":
		menu.SubmitTitle = text
	case "submit_description":
		menu.SubmitDescription = text
	default:
		return team, fmt.Errorf("menu field %q: %w", field, ErrUnknownField)
	}
	return team, nil
}

// AddPlayIdea appends an empty free-text play idea.
func AddPlayIdea(team Team) Team {
	team.Ideas.PlayIdeas = append(append([]string(nil), team.Ideas.PlayIdeas...), "")
	return team
}

// RemovePlayIdea excises the play idea at index.
func RemovePlayIdea(team Team, index int) (Team, error) {
	ideas := team.Ideas.PlayIdeas
	if index < 0 || index >= len(ideas) {
		return team, fmt.Errorf("play idea %d: %w", index, ErrIndexOutOfRange)
	}
	out := make([]string, 0, len(ideas)-1)
	out = append(out, ideas[:index]...)
	out = append(out, ideas[index+1:]...)
	team.Ideas.PlayIdeas = out
	return team, nil
}

// SetPlayIdea replaces the text of the play idea at index.
func SetPlayIdea(team Team, index int, value any) (Team, error) {
	ideas := team.Ideas.PlayIdeas
	if index < 0 || index >= len(ideas) {
		return team, fmt.Errorf("play idea %d: %w", index, ErrIndexOutOfRange)
	}
	text, err := stringValue("play_idea", value)
	if err != nil {
		return team, err
	}
	out := append([]string(nil), ideas...)
	out[index] = text
	team.Ideas.PlayIdeas = out
	return team, nil
}

// SetIdeaSectionField updates a scalar on review_idea, select_idea, or
// submit_idea.
func SetIdeaSectionField(team Team, sectionName, field string, value any) (Team, error) {
	section, err := ideaSection(team, sectionName)
	if err != nil {
		return team, err
	}
	text, err := stringValue(field, value)
	if err != nil {
		return team, err
	}

	switch field {
	case "id":
		section.ID = text
	case "title":
		section.Title = text
	case "description":
		section.Description = text
	case "image":
		section.Image = text
	case "completion_msg":
		section.CompletionMsg = text
	case "completion_image":
		section.CompletionImage = text
	default:
		return team, fmt.Errorf("idea field %q: %w", field, ErrUnknownField)
	}
	return withIdeaSection(team, sectionName, section)
}

// AddIdeaQuestion appends the empty question template to an idea section.
func AddIdeaQuestion(team Team, sectionName string) (Team, error) {
	section, err := ideaSection(team, sectionName)
	if err != nil {
		return team, err
	}
	section.Questions = append(append([]Question(nil), section.Questions...), NewQuestion())
	return withIdeaSection(team, sectionName, section)
}

// RemoveIdeaQuestion excises a question from an idea section.
func RemoveIdeaQuestion(team Team, sectionName string, questionIndex int) (Team, error) {
	section, err := ideaSection(team, sectionName)
	if err != nil {
		return team, err
	}
	questions, err := removeQuestion(section.Questions, questionIndex)
	if err != nil {
		return team, err
	}
	section.Questions = questions
	return withIdeaSection(team, sectionName, section)
}

// SetIdeaQuestionField updates one field on an idea-section question.
func SetIdeaQuestionField(team Team, sectionName string, questionIndex int, field string, value any) (Team, error) {
	section, err := ideaSection(team, sectionName)
	if err != nil {
		return team, err
	}
	questions, err := setQuestionAt(section.Questions, questionIndex, field, value)
	if err != nil {
		return team, err
	}
	section.Questions = questions
	return withIdeaSection(team, sectionName, section)
}

func ideaSection(team Team, name string) (IdeaSection, error) {
	switch name {
	case "review_idea":
		return team.Ideas.ReviewIdea, nil
	case "select_idea":
		return team.Ideas.SelectIdea, nil
	case "submit_idea":
		return team.Ideas.SubmitIdea, nil
	default:
		return IdeaSection{}, fmt.Errorf("section %q: %w", name, ErrUnknownSection)
	}
}

func withIdeaSection(team Team, name string, section IdeaSection) (Team, error) {
	switch name {
	case "review_idea":
		team.Ideas.ReviewIdea = section
	case "select_idea":
		team.Ideas.SelectIdea = section
	case "submit_idea":
		team.Ideas.SubmitIdea = section
	default:
		return team, fmt.Errorf("section %q: %w", name, ErrUnknownSection)
	}
	return team, nil
}

// --- questions ---

func removeQuestion(questions []Question, index int) ([]Question, error) {
	if index < 0 || index >= len(questions) {
		return questions, fmt.Errorf("question %d: %w", index, ErrIndexOutOfRange)
	}
	out := make([]Question, 0, len(questions)-1)
	out = append(out, questions[:index]...)
	out = append(out, questions[index+1:]...)
	return out, nil
}

func setQuestionAt(questions []Question, index int, field string, value any) ([]Question, error) {
	if index < 0 || index >= len(questions) {
		return questions, fmt.Errorf("question %d: %w", index, ErrIndexOutOfRange)
	}
	updated, err := setQuestionField(questions[index], field, value)
	if err != nil {
		return questions, err
	}
	out := append([]Question(nil), questions...)
	out[index] = updated
	return out, nil
}

// setQuestionField applies one field edit to a question. A
// question_type edit rebuilds the record from a clean template of the
// new variant, carrying over only the common fields (question text,
// multiple-selection flag, video); fields of the previous variant are
// dropped and switching back does not restore them.
func setQuestionField(q Question, field string, value any) (Question, error) {
	switch field {
	case "question_type":
		typ, err := stringValue(field, value)
		if err != nil {
			return q, err
		}
		return questionWithType(q, typ)
	case "question":
		text, err := stringValue(field, value)
		if err != nil {
			return q, err
		}
		q.Question = text
	case "allow_multiple_selection":
		flag, err := boolValue(field, value)
		if err != nil {
			return q, err
		}
		q.AllowMultipleSelection = flag
	case "video":
		text, err := stringValue(field, value)
		if err != nil {
			return q, err
		}
		q.Video = text
	case "options":
		options, err := stringSliceValue(field, value)
		if err != nil {
			return q, err
		}
		q.Options = options
	case "options_title_left":
		text, err := stringValue(field, value)
		if err != nil {
			return q, err
		}
		q.OptionsTitleLeft = text
	case "options_title_right":
		text, err := stringValue(field, value)
		if err != nil {
			return q, err
		}
		q.OptionsTitleRight = text
	case "option_image":
		text, err := stringValue(field, value)
		if err != nil {
			return q, err
		}
		q.OptionImage = text
	case "image_option_hint":
		text, err := stringValue(field, value)
		if err != nil {
			return q, err
		}
		q.ImageOptionHint = text
	default:
		return q, fmt.Errorf("question field %q: %w", field, ErrUnknownField)
	}
	return q, nil
}

func questionWithType(q Question, typ string) (Question, error) {
	switch typ {
	case QuestionOptionsList, QuestionTwoOptionsList, QuestionImage, QuestionDropdown:
	default:
		return q, fmt.Errorf("%q: %w", typ, ErrUnknownQuestionType)
	}
	fresh := Question{
		QuestionType:           typ,
		Question:               q.Question,
		AllowMultipleSelection: q.AllowMultipleSelection,
		Video:                  q.Video,
	}
	return normalizeQuestion(fresh), nil
}

// Dropdown-option and image-selection containers live on questions, and
// questions live in missions and in idea sections. The mutators below
// work on a single question; the exported pairs address it through
// either parent.

func questionAddDropdownOption(q Question) (Question, error) {
	q.DropdownOptions = append(append([]DropdownOption(nil), q.DropdownOptions...),
		DropdownOption{Options: []string{}})
	return q, nil
}

func questionRemoveDropdownOption(q Question, optionIndex int) (Question, error) {
	if optionIndex < 0 || optionIndex >= len(q.DropdownOptions) {
		return q, fmt.Errorf("dropdown option %d: %w", optionIndex, ErrIndexOutOfRange)
	}
	out := make([]DropdownOption, 0, len(q.DropdownOptions)-1)
	out = append(out, q.DropdownOptions[:optionIndex]...)
	out = append(out, q.DropdownOptions[optionIndex+1:]...)
	q.DropdownOptions = out
	return q, nil
}

func questionSetDropdownOptionField(q Question, optionIndex int, field string, value any) (Question, error) {
	if optionIndex < 0 || optionIndex >= len(q.DropdownOptions) {
		return q, fmt.Errorf("dropdown option %d: %w", optionIndex, ErrIndexOutOfRange)
	}
	option := q.DropdownOptions[optionIndex]
	switch field {
	case "title":
		text, err := stringValue(field, value)
		if err != nil {
			return q, err
		}
		option.Title = text
	case "hint":
		text, err := stringValue(field, value)
		if err != nil {
			return q, err
		}
		option.Hint = text
	case "options":
		options, err := stringSliceValue(field, value)
		if err != nil {
			return q, err
		}
		option.Options = options
	default:
		return q, fmt.Errorf("dropdown field %q: %w", field, ErrUnknownField)
	}
	out := append([]DropdownOption(nil), q.DropdownOptions...)
	out[optionIndex] = option
	q.DropdownOptions = out
	return q, nil
}

func questionAddImageSelection(q Question) (Question, error) {
	if len(q.ImageSelection) >= MaxImageSelections {
		return q, ErrImageSelectionFull
	}
	q.ImageSelection = append(append([]ImageSelection(nil), q.ImageSelection...), ImageSelection{})
	return q, nil
}

func questionRemoveImageSelection(q Question, entryIndex int) (Question, error) {
	if entryIndex < 0 || entryIndex >= len(q.ImageSelection) {
		return q, fmt.Errorf("image selection %d: %w", entryIndex, ErrIndexOutOfRange)
	}
	out := make([]ImageSelection, 0, len(q.ImageSelection)-1)
	out = append(out, q.ImageSelection[:entryIndex]...)
	out = append(out, q.ImageSelection[entryIndex+1:]...)
	q.ImageSelection = out
	return q, nil
}

func questionSetImageSelectionField(q Question, entryIndex int, field string, value any) (Question, error) {
	if entryIndex < 0 || entryIndex >= len(q.ImageSelection) {
		return q, fmt.Errorf("image selection %d: %w", entryIndex, ErrIndexOutOfRange)
	}
	text, err := stringValue(field, value)
	if err != nil {
		return q, err
	}
	entry := q.ImageSelection[entryIndex]
	switch field {
	case "title":
		entry.Title = text
	case "image":
		entry.Image = text
	default:
		return q, fmt.Errorf("image selection field %q: %w", field, ErrUnknownField)
	}
	out := append([]ImageSelection(nil), q.ImageSelection...)
	out[entryIndex] = entry
	q.ImageSelection = out
	return q, nil
}

// AddDropdownOption appends an empty dropdown option to a mission
// question.
func AddDropdownOption(team Team, missionIndex, questionIndex int) (Team, error) {
	return updateMissionQuestion(team, missionIndex, questionIndex, questionAddDropdownOption)
}

// RemoveDropdownOption excises a dropdown option from a mission question.
func RemoveDropdownOption(team Team, missionIndex, questionIndex, optionIndex int) (Team, error) {
	return updateMissionQuestion(team, missionIndex, questionIndex, func(q Question) (Question, error) {
		return questionRemoveDropdownOption(q, optionIndex)
	})
}

// SetDropdownOptionField updates a mission-question dropdown option:
// title, hint, or the whole options list.
func SetDropdownOptionField(team Team, missionIndex, questionIndex, optionIndex int, field string, value any) (Team, error) {
	return updateMissionQuestion(team, missionIndex, questionIndex, func(q Question) (Question, error) {
		return questionSetDropdownOptionField(q, optionIndex, field, value)
	})
}

// AddImageSelection appends an empty image-selection entry to a mission
// question, enforcing the editor cap.
func AddImageSelection(team Team, missionIndex, questionIndex int) (Team, error) {
	return updateMissionQuestion(team, missionIndex, questionIndex, questionAddImageSelection)
}

// RemoveImageSelection excises an image-selection entry from a mission
// question.
func RemoveImageSelection(team Team, missionIndex, questionIndex, entryIndex int) (Team, error) {
	return updateMissionQuestion(team, missionIndex, questionIndex, func(q Question) (Question, error) {
		return questionRemoveImageSelection(q, entryIndex)
	})
}

// SetImageSelectionField updates the title or image of a mission-question
// entry.
func SetImageSelectionField(team Team, missionIndex, questionIndex, entryIndex int, field string, value any) (Team, error) {
	return updateMissionQuestion(team, missionIndex, questionIndex, func(q Question) (Question, error) {
		return questionSetImageSelectionField(q, entryIndex, field, value)
	})
}

// AddIdeaDropdownOption appends an empty dropdown option to an
// idea-section question.
func AddIdeaDropdownOption(team Team, sectionName string, questionIndex int) (Team, error) {
	return updateIdeaQuestion(team, sectionName, questionIndex, questionAddDropdownOption)
}

// RemoveIdeaDropdownOption excises a dropdown option from an idea-section
// question.
func RemoveIdeaDropdownOption(team Team, sectionName string, questionIndex, optionIndex int) (Team, error) {
	return updateIdeaQuestion(team, sectionName, questionIndex, func(q Question) (Question, error) {
		return questionRemoveDropdownOption(q, optionIndex)
	})
}

// SetIdeaDropdownOptionField updates an idea-section dropdown option.
func SetIdeaDropdownOptionField(team Team, sectionName string, questionIndex, optionIndex int, field string, value any) (Team, error) {
	return updateIdeaQuestion(team, sectionName, questionIndex, func(q Question) (Question, error) {
		return questionSetDropdownOptionField(q, optionIndex, field, value)
	})
}

// AddIdeaImageSelection appends an empty image-selection entry to an
// idea-section question, enforcing the editor cap.
func AddIdeaImageSelection(team Team, sectionName string, questionIndex int) (Team, error) {
	return updateIdeaQuestion(team, sectionName, questionIndex, questionAddImageSelection)
}

// RemoveIdeaImageSelection excises an image-selection entry from an
// idea-section question.
func RemoveIdeaImageSelection(team Team, sectionName string, questionIndex, entryIndex int) (Team, error) {
	return updateIdeaQuestion(team, sectionName, questionIndex, func(q Question) (Question, error) {
		return questionRemoveImageSelection(q, entryIndex)
	})
}

// SetIdeaImageSelectionField updates the title or image of an
// idea-section entry.
func SetIdeaImageSelectionField(team Team, sectionName string, questionIndex, entryIndex int, field string, value any) (Team, error) {
	return updateIdeaQuestion(team, sectionName, questionIndex, func(q Question) (Question, error) {
		return questionSetImageSelectionField(q, entryIndex, field, value)
	})
}

func updateMissionQuestion(team Team, missionIndex, questionIndex int, fn func(Question) (Question, error)) (Team, error) {
	mission, err := missionAt(team, missionIndex)
	if err != nil {
		return team, err
	}
	if questionIndex < 0 || questionIndex >= len(mission.Questions) {
		return team, fmt.Errorf("question %d: %w", questionIndex, ErrIndexOutOfRange)
	}
	updated, err := fn(mission.Questions[questionIndex])
	if err != nil {
		return team, err
	}
	questions := append([]Question(nil), mission.Questions...)
	questions[questionIndex] = updated
	mission.Questions = questions
	return withMission(team, missionIndex, mission), nil
}

func updateIdeaQuestion(team Team, sectionName string, questionIndex int, fn func(Question) (Question, error)) (Team, error) {
	section, err := ideaSection(team, sectionName)
	if err != nil {
		return team, err
	}
	if questionIndex < 0 || questionIndex >= len(section.Questions) {
		return team, fmt.Errorf("question %d: %w", questionIndex, ErrIndexOutOfRange)
	}
	updated, err := fn(section.Questions[questionIndex])
	if err != nil {
		return team, err
	}
	questions := append([]Question(nil), section.Questions...)
	questions[questionIndex] = updated
	section.Questions = questions
	return withIdeaSection(team, sectionName, section)
}

// --- value coercion ---

func stringValue(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s expects a string: %w", field, ErrInvalidValue)
	}
	return s, nil
}

func boolValue(field string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s expects a boolean: %w", field, ErrInvalidValue)
	}
	return b, nil
}

// stringSliceValue accepts either []string or the []any a JSON decoder
// produces.
func stringSliceValue(field string, v any) ([]string, error) {
	switch vv := v.(type) {
	case []string:
		return append([]string(nil), vv...), nil
	case []any:
		out := make([]string, len(vv))
		for i, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s expects strings: %w", field, ErrInvalidValue)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s expects a string array: %w", field, ErrInvalidValue)
	}
}
