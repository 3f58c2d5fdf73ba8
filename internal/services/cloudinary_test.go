package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jabarteley/CitizensReportApp-ionic/internal/config"
)

func TestNewUploadServiceRequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"no cloud name", config.Config{CloudinaryAPIKey: "k", CloudinaryAPISecret: "s"}},
		{"no api key", config.Config{CloudinaryCloudName: "demo", CloudinaryAPISecret: "s"}},
		{"no api secret", config.Config{CloudinaryCloudName: "demo", CloudinaryAPIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUploadService(&tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "cloudinary configuration is missing")
		})
	}
}

func TestNewUploadService(t *testing.T) {
	svc, err := NewUploadService(&config.Config{
		CloudinaryCloudName:    "demo",
		CloudinaryAPIKey:       "key",
		CloudinaryAPISecret:    "secret",
		CloudinaryUploadPreset: "reports_unsigned",
		CloudinaryUploadFolder: "reports",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestThumbnailURL(t *testing.T) {
	in := "https://res.cloudinary.com/demo/image/upload/v1712345/reports/pothole.jpg"
	out := ThumbnailURL(in, 120, 80)
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/c_fill,w_120,h_80,q_auto,f_auto/v1712345/reports/pothole.jpg",
		out)
}

func TestThumbnailURLPassthrough(t *testing.T) {
	// non-delivery URLs come back untouched
	in := "https://example.com/some/image.jpg"
	assert.Equal(t, in, ThumbnailURL(in, 120, 80))
	assert.Equal(t, "", ThumbnailURL("", 120, 80))
}
