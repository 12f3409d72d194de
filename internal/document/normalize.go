// internal/document/normalize.go
package document

// NormalizeTeam returns a copy of the team with every nil optional
// container replaced by its field-wise-empty default, so the editing
// surface always binds against a complete shape. Populated values are
// never overwritten; normalizing twice yields the same document.
func NormalizeTeam(team Team) Team {
	out := team

	if out.TeamHome.TopTeamRank == nil {
		out.TeamHome.TopTeamRank = []Member{}
	} else {
		out.TeamHome.TopTeamRank = append([]Member(nil), out.TeamHome.TopTeamRank...)
	}

	if out.Missions == nil {
		out.Missions = []Mission{}
	} else {
		missions := make([]Mission, len(out.Missions))
		for i, mission := range out.Missions {
			missions[i] = normalizeMission(mission)
		}
		out.Missions = missions
	}

	out.Ideas = normalizeIdeas(out.Ideas)
	return out
}

// NormalizeLeagues returns a copy of the league document with nil team
// lists replaced by empty ones.
func NormalizeLeagues(doc LeagueDocument) LeagueDocument {
	if doc.Leagues == nil {
		return LeagueDocument{Leagues: []League{}}
	}
	leagues := make([]League, len(doc.Leagues))
	for i, league := range doc.Leagues {
		if league.Teams == nil {
			league.Teams = []BasicTeam{}
		} else {
			league.Teams = append([]BasicTeam(nil), league.Teams...)
		}
		leagues[i] = league
	}
	return LeagueDocument{Leagues: leagues}
}

func normalizeMission(mission Mission) Mission {
	if mission.Questions == nil {
		mission.Questions = []Question{}
	} else {
		questions := make([]Question, len(mission.Questions))
		for i, q := range mission.Questions {
			questions[i] = normalizeQuestion(q)
		}
		mission.Questions = questions
	}
	return mission
}

// normalizeQuestion gives the active variant its container so the editor
// can append without a nil check. Containers belonging to other variants
// are left alone.
func normalizeQuestion(q Question) Question {
	switch q.QuestionType {
	case QuestionOptionsList, QuestionTwoOptionsList:
		if q.Options == nil {
			q.Options = []string{}
		}
	case QuestionDropdown:
		if q.DropdownOptions == nil {
			q.DropdownOptions = []DropdownOption{}
		}
	}
	return q
}

func normalizeIdeas(ideas Ideas) Ideas {
	if ideas.PlayIdeas == nil {
		ideas.PlayIdeas = []string{}
	} else {
		ideas.PlayIdeas = append([]string(nil), ideas.PlayIdeas...)
	}
	ideas.ReviewIdea = normalizeIdeaSection(ideas.ReviewIdea)
	ideas.SelectIdea = normalizeIdeaSection(ideas.SelectIdea)
	ideas.SubmitIdea = normalizeIdeaSection(ideas.SubmitIdea)
	return ideas
}

func normalizeIdeaSection(section IdeaSection) IdeaSection {
	if section.Questions == nil {
		section.Questions = []Question{}
	} else {
		questions := make([]Question, len(section.Questions))
		for i, q := range section.Questions {
			questions[i] = normalizeQuestion(q)
		}
		section.Questions = questions
	}
	return section
}
