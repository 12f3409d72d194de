package document

import "testing"

func teamFixture() Team {
	return Team{
		ID:        "falcons",
		Name:      "Falcons",
		LogoImage: "logos/falcons.png",
		SurveyURL: "https://example.com/survey",
		Enabled:   true,
		WelcomeDetails: WelcomeDetails{
			Title:        "Welcome",
			Description:  "Glad you are here",
			WelcomeImage: "welcome.png",
			Author:       "Coach",
		},
		TeamHome: TeamHome{
			Motto:        "Fly high",
			BestIdeas:    Member{UserName: "ana", UserImage: "ana.png"},
			MostMissions: Member{UserName: "ben", UserImage: "ben.png"},
			TopTeamRank: []Member{
				{UserName: "cara", UserImage: "cara.png"},
				{UserName: "dan", UserImage: "dan.png"},
			},
		},
		Missions: []Mission{{
			ID:              "m1",
			Title:           "First mission",
			Description:     "Do the thing",
			Image:           "m1.png",
			FocusType:       "trivia",
			Level:           "SuperFan",
			CompletionMsg:   "Done",
			CompletionImage: "done.png",
			Questions: []Question{{
				QuestionType: QuestionOptionsList,
				Question:     "Pick one",
				Options:      []string{"a", "b"},
			}},
		}},
		Ideas: Ideas{
			DefaultYoutubeThumbnailImage: "thumb.png",
			MenuList: MenuList{
				ReviewTitle: "Review", ReviewDescription: "Review ideas",
				SelectTitle: "Select", SelectDescription: "Select ideas",
				SubmitTitle: "Submit", SubmitDescription: "Submit ideas",
			},
			PlayIdeas: []string{"play outside"},
			ReviewIdea: IdeaSection{
				ID: "review", Title: "Review", Description: "d", Image: "r.png",
				CompletionMsg: "ok", CompletionImage: "ok.png",
				Questions: []Question{{QuestionType: QuestionOptionsList, Question: "q", Options: []string{"x"}}},
			},
			SelectIdea: IdeaSection{
				ID: "select", Title: "Select", Description: "d", Image: "s.png",
				CompletionMsg: "ok", CompletionImage: "ok.png",
				Questions: []Question{{QuestionType: QuestionOptionsList, Question: "q", Options: []string{"x"}}},
			},
			SubmitIdea: IdeaSection{
				ID: "submit", Title: "Submit", Description: "d", Image: "u.png",
				Questions: []Question{},
			},
		},
	}
}

func TestValidateTeamSaveValidDocument(t *testing.T) {
	result := ValidateTeamSave(teamFixture())
	if !result.Valid {
		t.Fatalf("expected valid team, got errors: %v", result.Errors)
	}
}

func TestValidateTeamSaveBasicInfo(t *testing.T) {
	team := teamFixture()
	team.ID = ""
	team.SurveyURL = ""

	result := ValidateTeamSave(team)
	if result.Valid || len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
	if result.Errors[0].Path != "Team" || result.Errors[0].Message != "Team ID is required" {
		t.Fatalf("unexpected first error: %+v", result.Errors[0])
	}
	if result.Errors[1].Message != "Survey URL is required" {
		t.Fatalf("unexpected second error: %+v", result.Errors[1])
	}
}

func TestValidateTeamSaveTopRankEntries(t *testing.T) {
	team := teamFixture()
	team.TeamHome.TopTeamRank[1].UserImage = ""

	result := ValidateTeamSave(team)
	if result.Valid || len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if result.Errors[0].Path != "Team Home - Top Rank 2" {
		t.Fatalf("unexpected path: %q", result.Errors[0].Path)
	}

	team.TeamHome.TopTeamRank = nil
	result = ValidateTeamSave(team)
	if result.Valid || result.Errors[0].Message != "Top team rank is required" {
		t.Fatalf("expected top rank error, got %v", result.Errors)
	}
}

func TestValidateTeamSaveMissions(t *testing.T) {
	team := teamFixture()
	team.Missions = []Mission{}
	result := ValidateTeamSave(team)
	if result.Valid {
		t.Fatal("expected invalid team")
	}
	if result.Errors[0].Path != "Missions" || result.Errors[0].Message != "At least one mission is required" {
		t.Fatalf("unexpected error: %+v", result.Errors[0])
	}

	team = teamFixture()
	team.Missions[0].Level = ""
	team.Missions[0].Questions = nil
	result = ValidateTeamSave(team)
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
	if result.Errors[0].Path != "Mission 1" || result.Errors[0].Message != "Mission level is required" {
		t.Fatalf("unexpected error: %+v", result.Errors[0])
	}
	if result.Errors[1].Message != "Mission must have at least one question" {
		t.Fatalf("unexpected error: %+v", result.Errors[1])
	}
}

func TestValidateTeamSaveMissionLevelIsFreeString(t *testing.T) {
	// The level enumeration is a UI hint only; any non-empty string
	// passes the save gate.
	team := teamFixture()
	team.Missions[0].Level = "Grandmaster"
	if result := ValidateTeamSave(team); !result.Valid {
		t.Fatalf("expected free-string level to pass, got %v", result.Errors)
	}
}

func TestValidateTeamSaveSelectIdeaNeedsQuestions(t *testing.T) {
	team := teamFixture()
	team.Ideas.SelectIdea.Questions = []Question{}

	result := ValidateTeamSave(team)
	if result.Valid || len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if result.Errors[0].Path != "Ideas - Select" {
		t.Fatalf("unexpected path: %q", result.Errors[0].Path)
	}
	if result.Errors[0].Message != "Select idea must have at least one question" {
		t.Fatalf("unexpected message: %q", result.Errors[0].Message)
	}
}

func TestValidateTeamSaveSubmitIdeaSkipsQuestionCheck(t *testing.T) {
	team := teamFixture()
	team.Ideas.SubmitIdea.Questions = nil
	team.Ideas.SubmitIdea.CompletionMsg = ""
	team.Ideas.SubmitIdea.CompletionImage = ""
	if result := ValidateTeamSave(team); !result.Valid {
		t.Fatalf("submit idea should not require questions or completion fields, got %v", result.Errors)
	}
}

func TestValidateTeamSaveMenuListPairs(t *testing.T) {
	team := teamFixture()
	team.Ideas.MenuList.SelectDescription = ""

	result := ValidateTeamSave(team)
	if result.Valid || len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if result.Errors[0].Path != "Ideas - Menu List" || result.Errors[0].Message != "Select title and description are required" {
		t.Fatalf("unexpected error: %+v", result.Errors[0])
	}
}

func TestValidateTeamUploadLooserThanSave(t *testing.T) {
	// An empty missions array passes upload (only the array shape is
	// checked) but fails save.
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
	result := ValidateUpload(raw, KindTeam)
	if !result.Valid {
		t.Fatalf("expected upload to pass, got %v", result.Errors)
	}
}

func TestValidateTeamUploadMissingSections(t *testing.T) {
	raw := map[string]any{"id": "falcons"}
	result := ValidateUpload(raw, KindTeam)
	if result.Valid {
		t.Fatal("expected invalid upload")
	}
	want := map[string]bool{
		"Missing team name":         false,
		"Missing welcome details":   false,
		"Missing team home section": false,
		"Missions must be an array": false,
		"Missing ideas section":     false,
	}
	for _, verr := range result.Errors {
		if _, ok := want[verr.Message]; ok {
			want[verr.Message] = true
		}
	}
	for msg, seen := range want {
		if !seen {
			t.Fatalf("expected message %q in %v", msg, result.Errors)
		}
	}
}
