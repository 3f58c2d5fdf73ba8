package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jabarteley/CitizensReportApp-ionic/internal/apperrors"
)

func validInput() CreateReportInput {
	return CreateReportInput{
		Title:       "Pothole on Main",
		Description: "Large pothole near the school",
		Category:    CategoryRoad,
	}
}

func TestCreateReportInputValidate_OK(t *testing.T) {
	assert.NoError(t, validInput().Validate())
}

func TestCreateReportInputValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateReportInput)
		field  string
	}{
		{"missing title", func(in *CreateReportInput) { in.Title = "" }, "title"},
		{"short title", func(in *CreateReportInput) { in.Title = "Pot" }, "title"},
		{"blank title", func(in *CreateReportInput) { in.Title = "     " }, "title"},
		{"missing description", func(in *CreateReportInput) { in.Description = "" }, "description"},
		{"short description", func(in *CreateReportInput) { in.Description = "too short" }, "description"},
		{"missing category", func(in *CreateReportInput) { in.Category = "" }, "category"},
		{"unknown category", func(in *CreateReportInput) { in.Category = "weather" }, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()
			require.Error(t, err)

			var verr *apperrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestCreateReportInputValidate_ShortDescriptionBoundary(t *testing.T) {
	in := validInput()
	in.Description = "0123456789" // exactly 10
	assert.NoError(t, in.Validate())

	in.Description = "012345678" // 9
	assert.Error(t, in.Validate())
}

func TestCreateReportInputValidate_MultibyteLengths(t *testing.T) {
	// lengths are counted in characters, not bytes
	in := validInput()
	in.Title = "héll" // 4 chars, 5 bytes
	err := in.Validate()
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")

	in = validInput()
	in.Title = "héllo"            // 5 chars
	in.Description = "café stôps" // 10 chars, 12 bytes
	assert.NoError(t, in.Validate())

	in.Description = "café stôp" // 9 chars, 11 bytes
	assert.Error(t, in.Validate())
}

func TestPasswordsMatch(t *testing.T) {
	assert.True(t, PasswordsMatch("secret1", "secret1"))
	assert.False(t, PasswordsMatch("secret1", "secret2"))
	assert.False(t, PasswordsMatch("", ""))
}
