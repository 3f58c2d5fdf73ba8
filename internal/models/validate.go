package model

import (
	"strings"
	"unicode/utf8"

	"github.com/Jabarteley/CitizensReportApp-ionic/internal/apperrors"
)

// Form constraints enforced before any network call is made.
const (
	MinTitleLen       = 5
	MinDescriptionLen = 10
)

// Validate checks the submission form constraints: title present and at least
// 5 characters, description present and at least 10, category one of the fixed
// set. Returns a ValidationError describing every failing field.
func (in CreateReportInput) Validate() error {
	fields := map[string]string{}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		fields["title"] = "title is required"
	} else if utf8.RuneCountInString(title) < MinTitleLen {
		fields["title"] = "title must be at least 5 characters"
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		fields["description"] = "description is required"
	} else if utf8.RuneCountInString(description) < MinDescriptionLen {
		fields["description"] = "description must be at least 10 characters"
	}

	if in.Category == "" {
		fields["category"] = "category is required"
	} else if !ValidCategory(in.Category) {
		fields["category"] = "unknown category"
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

// PasswordsMatch is the registration form's cross-field check, evaluated on
// every edit of either field.
func PasswordsMatch(password, confirm string) bool {
	return password != "" && password == confirm
}
