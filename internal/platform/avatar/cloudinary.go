// Package avatar uploads user avatars to Cloudinary and hands back a display URL.
package avatar

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stores an avatar image and returns the URL it will be served from.
type Uploader interface {
	// Upload stores the image under a per-user public ID, replacing any previous
	// avatar, and returns a 250x250 fill-cropped delivery URL.
	Upload(ctx context.Context, username string, file io.Reader) (string, error)
}

type cloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader creates an Uploader from a cloudinary:// credentials URL.
func NewCloudinaryUploader(cloudinaryURL string) (Uploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}
	return &cloudinaryUploader{cld: cld}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, username string, file io.Reader) (string, error) {
	publicID := fmt.Sprintf("ContactsApp/%s", username)

	_, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	img, err := u.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to build avatar image asset: %w", err)
	}
	img.Transformation = "c_fill,h_250,w_250"

	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to build avatar URL: %w", err)
	}
	return url, nil
}
