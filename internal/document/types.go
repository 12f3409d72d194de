// internal/document/types.go

// Package document holds the two editable document families (league
// collections and full team records), their upload/save validators, the
// shape normalizer, and the field-level edit operations the HTTP layer
// applies on behalf of the editor UI.
package document

// Kind identifies which document family a payload belongs to.
type Kind string

const (
	KindLeague Kind = "league"
	KindTeam   Kind = "team"
)

// Question type discriminators. Every question carries exactly one of
// these in question_type; the variant decides which optional fields the
// editor surfaces.
const (
	QuestionOptionsList    = "options_list"
	QuestionTwoOptionsList = "2_options_list"
	QuestionImage          = "image"
	QuestionDropdown       = "dropdown"
)

// MissionLevels are the levels the editor offers for Mission.Level. The
// save validator only requires a non-empty string; the enumeration is a
// UI hint, not a closed set.
var MissionLevels = []string{"SuperFan", "Analyst", "Genius"}

// MaxImageSelections caps the image_selection list per question. The cap
// is an editor rule; documents uploaded with more entries are accepted.
const MaxImageSelections = 12

// LeagueDocument is the top-level league-family document.
type LeagueDocument struct {
	Leagues []League `json:"leagues"`
}

type League struct {
	ID        string      `json:"id"`
	LogoImage string      `json:"logo_image"`
	Enabled   bool        `json:"enabled"`
	Teams     []BasicTeam `json:"teams"`
}

// BasicTeam is a league member row. It is distinct from the full Team
// document: only three fields are serialized. IsNew marks a row added in
// the editor but not yet committed; such rows are excluded from
// document-level validation and from the export projection until
// CommitTeam clears the flag. RowErrors holds per-field messages from a
// failed commit. Neither survives serialization.
type BasicTeam struct {
	ID        string `json:"id"`
	LogoImage string `json:"logo_image"`
	Enabled   bool   `json:"enabled"`

	IsNew     bool              `json:"-"`
	RowErrors map[string]string `json:"-"`
}

// Team is the full team-family document.
type Team struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	LogoImage      string         `json:"logo_image"`
	SurveyURL      string         `json:"survey_url"`
	Enabled        bool           `json:"enabled"`
	WelcomeDetails WelcomeDetails `json:"welcome_details"`
	TeamHome       TeamHome       `json:"team_home"`
	Missions       []Mission      `json:"missions"`
	Ideas          Ideas          `json:"ideas"`
}

type WelcomeDetails struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	WelcomeImage string `json:"welcome_image"`
	Author       string `json:"author"`
}

// Member is a user reference shown on the team home screen.
type Member struct {
	UserName  string `json:"user_name"`
	UserImage string `json:"user_image"`
}

type TeamHome struct {
	Motto        string   `json:"motto"`
	BestIdeas    Member   `json:"best_ideas"`
	MostMissions Member   `json:"most_missions"`
	TopTeamRank  []Member `json:"top_team_rank"`
}

type Mission struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Image           string     `json:"image"`
	FocusType       string     `json:"focus_type"`
	Level           string     `json:"level"`
	CompletionMsg   string     `json:"completion_msg"`
	CompletionImage string     `json:"completion_image"`
	Questions       []Question `json:"questions"`
}

// Question is the flattened tagged union over QuestionType. Variant
// fields are omitempty so a round-trip does not invent keys the source
// document never had.
type Question struct {
	QuestionType           string           `json:"question_type"`
	Question               string           `json:"question"`
	AllowMultipleSelection bool             `json:"allow_multiple_selection"`
	Video                  string           `json:"video,omitempty"`
	Options                []string         `json:"options,omitempty"`
	OptionsTitleLeft       string           `json:"options_title_left,omitempty"`
	OptionsTitleRight      string           `json:"options_title_right,omitempty"`
	OptionImage            string           `json:"option_image,omitempty"`
	ImageOptionHint        string           `json:"image_option_hint,omitempty"`
	DropdownOptions        []DropdownOption `json:"dropdown_options,omitempty"`
	ImageSelection         []ImageSelection `json:"image_selection,omitempty"`
}

type DropdownOption struct {
	Title   string   `json:"title"`
	Hint    string   `json:"hint"`
	Options []string `json:"options"`
}

type ImageSelection struct {
	Title string `json:"title"`
	Image string `json:"image"`
}

// IdeaSection is shared by the review/select/submit idea blocks. The
// save validator requires completion fields and a non-empty question
// list for review and select but not for submit.
type IdeaSection struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Image           string     `json:"image,omitempty"`
	CompletionMsg   string     `json:"completion_msg,omitempty"`
	CompletionImage string     `json:"completion_image,omitempty"`
	Questions       []Question `json:"questions,omitempty"`
}

type MenuList struct {
	ReviewTitle       string `json:"review_title"`
	ReviewDescription string `json:"review_description"`
	SelectTitle       string `json:"select_title"`
	SelectDescription string `json:"select_description"`
	SubmitTitle       string `json:"submit_title"`
	SubmitDescription string `json:"submit_description"`
}

type Ideas struct {
	DefaultYoutubeThumbnailImage string      `json:"default_youtube_thumbnail_image"`
	MenuList                     MenuList    `json:"menu_list"`
	PlayIdeas                    []string    `json:"play_ideas"`
	ReviewIdea                   IdeaSection `json:"review_idea"`
	SelectIdea                   IdeaSection `json:"select_idea"`
	SubmitIdea                   IdeaSection `json:"submit_idea"`
}

// NewQuestion returns the field-wise-empty question the editor appends,
// always an options_list with an empty option set.
func NewQuestion() Question {
	return Question{
		QuestionType: QuestionOptionsList,
		Options:      []string{},
	}
}

// NewLeague returns the empty league template used by the add-league
// action. New leagues start enabled with no teams.
func NewLeague() League {
	return League{Enabled: true, Teams: []BasicTeam{}}
}

// NewBasicTeam returns the empty, uncommitted team row appended by the
// add-team action.
func NewBasicTeam() BasicTeam {
	return BasicTeam{Enabled: true, IsNew: true}
}

// NewMission returns the empty mission template with no questions.
func NewMission() Mission {
	return Mission{Questions: []Question{}}
}
