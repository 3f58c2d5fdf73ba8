package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/Jabarteley/CitizensReportApp-ionic/internal/apperrors"
	"github.com/Jabarteley/CitizensReportApp-ionic/internal/config"
)

// UploadService pushes report images to Cloudinary under a fixed account and
// upload preset and hands back the public URL. It holds no mutable state, so
// concurrent uploads are independent.
type UploadService struct {
	cld    *cloudinary.Cloudinary
	preset string
	folder string
}

// NewUploadService creates the Cloudinary client from config.
func NewUploadService(cfg *config.Config) (*UploadService, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &UploadService{
		cld:    cld,
		preset: cfg.CloudinaryUploadPreset,
		folder: cfg.CloudinaryUploadFolder,
	}, nil
}

// Upload sends one image and returns its secure URL. Single attempt, no
// retry; any transfer failure or a response without a secure URL is an
// UploadError.
func (s *UploadService) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		UploadPreset:     s.preset,
		Folder:           s.folder,
		ResourceType:     "image",
		FilenameOverride: filename,
	})
	if err != nil {
		return "", apperrors.NewUploadError("transfer failed", err)
	}

	if result.Error.Message != "" {
		return "", apperrors.NewUploadError(result.Error.Message, nil)
	}

	if result.SecureURL == "" {
		return "", apperrors.NewUploadError("no secure URL in response", nil)
	}

	return result.SecureURL, nil
}

// ThumbnailURL rewrites a delivery URL with a fill transformation sized for
// list thumbnails. URLs that are not Cloudinary delivery URLs come back
// unchanged.
func (s *UploadService) ThumbnailURL(secureURL string, width, height int) string {
	return ThumbnailURL(secureURL, width, height)
}

// ThumbnailURL inserts a thumbnail transformation into a Cloudinary delivery
// URL.
func ThumbnailURL(secureURL string, width, height int) string {
	const marker = "/image/upload/"
	i := strings.Index(secureURL, marker)
	if i < 0 {
		return secureURL
	}
	transformation := fmt.Sprintf("c_fill,w_%d,h_%d,q_auto,f_auto", width, height)
	return secureURL[:i+len(marker)] + transformation + "/" + secureURL[i+len(marker):]
}
