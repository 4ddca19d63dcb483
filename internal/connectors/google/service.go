package google

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/vision/v1"
)

// NewDriveService creates a Google Drive API service using the provided TokenSource.
// Extra options are appended, which lets tests point the client at a local server.
func NewDriveService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*drive.Service, error) {
	return drive.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
}

// NewVisionService creates a Cloud Vision API service using the provided TokenSource.
func NewVisionService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*vision.Service, error) {
	return vision.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
}
