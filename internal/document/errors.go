package document

import "errors"

var (
	// ErrIndexOutOfRange is returned when an edit addresses a list
	// element that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnknownField is returned when an edit names a field the target
	// record does not have.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue is returned when an edit's value has the wrong
	// type for the target field.
	ErrInvalidValue = errors.New("invalid value for field")
	// ErrUnknownQuestionType is returned for a question_type outside the
	// four variants.
	ErrUnknownQuestionType = errors.New("unknown question type")
	// ErrImageSelectionFull is returned when adding an image-selection
	// entry to a question that already holds the editor cap.
	ErrImageSelectionFull = errors.New("image selection list is full")
	// ErrUnknownSection is returned when an edit names an idea section
	// other than review_idea, select_idea, or submit_idea.
	ErrUnknownSection = errors.New("unknown idea section")
)
