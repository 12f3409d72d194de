// internal/document/validate_team.go
package document

import "fmt"

// ValidateTeamSave gates a team document before export. Checks run in
// fixed section order: basic info, welcome details, team home, missions,
// ideas. Every required string must be non-empty and every question list
// non-empty (except submit_idea). The document is never mutated.
func ValidateTeamSave(team Team) Result {
	var errs []ValidationError
	push := func(path, msg string) {
		errs = append(errs, ValidationError{Path: path, Message: msg})
	}

	if team.ID == "" {
		push("Team", "Team ID is required")
	}
	if team.Name == "" {
		push("Team", "Team name is required")
	}
	if team.LogoImage == "" {
		push("Team", "Team logo image is required")
	}
	if team.SurveyURL == "" {
		push("Team", "Survey URL is required")
	}

	if team.WelcomeDetails.Title == "" {
		push("Welcome Details", "Welcome title is required")
	}
	if team.WelcomeDetails.Description == "" {
		push("Welcome Details", "Welcome description is required")
	}
	if team.WelcomeDetails.WelcomeImage == "" {
		push("Welcome Details", "Welcome image is required")
	}
	if team.WelcomeDetails.Author == "" {
		push("Welcome Details", "Welcome author is required")
	}

	home := team.TeamHome
	if home.Motto == "" {
		push("Team Home", "Team motto is required")
	}
	if home.BestIdeas.UserName == "" || home.BestIdeas.UserImage == "" {
		push("Team Home", "Best ideas user details are required")
	}
	if home.MostMissions.UserName == "" || home.MostMissions.UserImage == "" {
		push("Team Home", "Most missions user details are required")
	}
	if len(home.TopTeamRank) == 0 {
		push("Team Home", "Top team rank is required")
	} else {
		for i, rank := range home.TopTeamRank {
			if rank.UserName == "" || rank.UserImage == "" {
				push(fmt.Sprintf("Team Home - Top Rank %d", i+1),
					"User name and image are required for each rank")
			}
		}
	}

	if len(team.Missions) == 0 {
		push("Missions", "At least one mission is required")
	} else {
		for i, mission := range team.Missions {
			path := fmt.Sprintf("Mission %d", i+1)
			if mission.ID == "" {
				push(path, "Mission ID is required")
			}
			if mission.Title == "" {
				push(path, "Mission title is required")
			}
			if mission.Description == "" {
				push(path, "Mission description is required")
			}
			if mission.Image == "" {
				push(path, "Mission image is required")
			}
			if mission.FocusType == "" {
				push(path, "Mission focus type is required")
			}
			if mission.Level == "" {
				push(path, "Mission level is required")
			}
			if mission.CompletionMsg == "" {
				push(path, "Mission completion message is required")
			}
			if mission.CompletionImage == "" {
				push(path, "Mission completion image is required")
			}
			if len(mission.Questions) == 0 {
				push(path, "Mission must have at least one question")
			}
		}
	}

	ideas := team.Ideas
	if ideas.DefaultYoutubeThumbnailImage == "" {
		push("Ideas", "Default YouTube thumbnail image is required")
	}

	menu := ideas.MenuList
	if menu.ReviewTitle == "" || menu.ReviewDescription == "" {
		push("Ideas - Menu List", "Review title and description are required")
	}
	if menu.SelectTitle == "" || menu.SelectDescription == "" {
		push("Ideas - Menu List", "Select title and description are required")
	}
	if menu.SubmitTitle == "" || menu.SubmitDescription == "" {
		push("Ideas - Menu List", "Submit title and description are required")
	}

	if len(ideas.PlayIdeas) == 0 {
		push("Ideas", "Play ideas array must not be empty")
	}

	errs = append(errs, validateIdeaSection(ideas.ReviewIdea, "Ideas - Review", "Review", true)...)
	errs = append(errs, validateIdeaSection(ideas.SelectIdea, "Ideas - Select", "Select", true)...)
	errs = append(errs, validateIdeaSection(ideas.SubmitIdea, "Ideas - Submit", "Submit", false)...)

	return invalid(errs)
}

// validateIdeaSection checks one review/select/submit block. The full
// sections additionally require completion fields and at least one
// question; submit requires only id, title, description, and image.
func validateIdeaSection(section IdeaSection, path, label string, full bool) []ValidationError {
	var errs []ValidationError
	push := func(msg string) {
		errs = append(errs, ValidationError{Path: path, Message: msg})
	}

	if section.ID == "" {
		push(fmt.Sprintf("%s idea ID is required", label))
	}
	if section.Title == "" {
		push(fmt.Sprintf("%s idea title is required", label))
	}
	if section.Description == "" {
		push(fmt.Sprintf("%s idea description is required", label))
	}
	if section.Image == "" {
		push(fmt.Sprintf("%s idea image is required", label))
	}
	if !full {
		return errs
	}
	if section.CompletionMsg == "" {
		push(fmt.Sprintf("%s idea completion message is required", label))
	}
	if section.CompletionImage == "" {
		push(fmt.Sprintf("%s idea completion image is required", label))
	}
	if len(section.Questions) == 0 {
		push(fmt.Sprintf("%s idea must have at least one question", label))
	}
	return errs
}
