package utils

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/meinhoongagan/taskr/config"
)

// Uploader stores a media file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file interface{}, filename, publicID, folder string) (string, error)
}

// MediaUploader uploads files to Cloudinary.
type MediaUploader struct {
	cld    *cloudinary.Cloudinary
	preset string
}

// NewMediaUploader initializes the Cloudinary client
func NewMediaUploader(cfg config.CloudinaryConfig) (*MediaUploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &MediaUploader{cld: cld, preset: cfg.UploadPreset}, nil
}

// Upload sends file to Cloudinary and returns the secure URL. Images are
// cropped to a thumbnail; PDFs are stored as-is.
func (u *MediaUploader) Upload(ctx context.Context, file interface{}, filename, publicID, folder string) (string, error) {
	params := uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		UploadPreset:   u.preset,
		Transformation: thumbnailFor(filename),
	}
	resp, err := u.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", filename, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func thumbnailFor(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return ""
	}
	return "c_thumb,w_200,h_200"
}
