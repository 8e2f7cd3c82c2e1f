package project

import (
	"github.com/jsamuelsen11/project-tracker/internal/domain/validation"
)

// Input is a project submission as entered on the form.
type Input struct {
	Title       string
	Description string
	People      int
}

// Rules bounds the form fields. Zero bounds are not enforced.
type Rules struct {
	TitleMinLength       int
	TitleMaxLength       int
	DescriptionMinLength int
	PeopleMin            int
	PeopleMax            int
}

// DefaultRules are the bounds the project form has always used.
func DefaultRules() Rules {
	return Rules{
		TitleMinLength:       2,
		TitleMaxLength:       30,
		DescriptionMinLength: 5,
		PeopleMin:            1,
	}
}

// Validate checks the submission against r. Every field is required.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (in *Input) Validate(r Rules) error {
	title := validation.Constraints{Required: true}
	if r.TitleMinLength > 0 {
		title.MinLength = validation.Int(r.TitleMinLength)
	}
	if r.TitleMaxLength > 0 {
		title.MaxLength = validation.Int(r.TitleMaxLength)
	}

	description := validation.Constraints{Required: true}
	if r.DescriptionMinLength > 0 {
		description.MinLength = validation.Int(r.DescriptionMinLength)
	}

	people := validation.Constraints{Required: true}
	if r.PeopleMin > 0 {
		people.Min = validation.Float(float64(r.PeopleMin))
	}
	if r.PeopleMax > 0 {
		people.Max = validation.Float(float64(r.PeopleMax))
	}

	return validation.Check(
		validation.Field{Name: "title", Value: in.Title, Constraints: title},
		validation.Field{Name: "description", Value: in.Description, Constraints: description},
		validation.Field{Name: "people", Value: in.People, Constraints: people},
	)
}
