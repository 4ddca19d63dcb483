package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/vision/v1"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

// Scopes requested for service account credentials.
var Scopes = []string{
	drive.DriveReadonlyScope,
	vision.CloudVisionScope,
}

// Credentials describes how to authenticate against Google APIs.
// A credentials file takes precedence over a static access token.
type Credentials struct {
	// File is a path to a service account JSON key.
	File string

	// JSON is the raw service account key, used when File is empty.
	JSON []byte

	// AccessToken is a pre-issued OAuth access token.
	AccessToken string
}

// CredentialsFromSettings maps drive settings onto Credentials.
func CredentialsFromSettings(s domain.DriveSettings) Credentials {
	return Credentials{
		File:        s.CredentialsFile,
		AccessToken: s.AccessToken,
	}
}

// NewTokenSource creates an oauth2.TokenSource from the configured credentials.
// The returned TokenSource can be used with option.WithTokenSource() when
// creating Google API services.
func NewTokenSource(ctx context.Context, creds Credentials) (oauth2.TokenSource, error) {
	data := creds.JSON
	if creds.File != "" {
		raw, err := os.ReadFile(creds.File)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		data = raw
	}

	if len(data) > 0 {
		parsed, err := googleoauth.CredentialsFromJSON(ctx, data, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("parse credentials: %w", err)
		}
		return parsed.TokenSource, nil
	}

	if creds.AccessToken != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: creds.AccessToken,
			TokenType:   "Bearer",
		}), nil
	}

	return nil, domain.ErrAuthRequired
}
