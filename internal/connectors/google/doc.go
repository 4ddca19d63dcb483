// Package google provides shared infrastructure for Google API adapters.
//
// This package contains common utilities used by the drive and vision
// adapters including:
//   - Token sources built from a service account key or a static access token
//   - Service factories for creating Google API clients
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
//	ts, err := google.NewTokenSource(ctx, google.CredentialsFromSettings(settings.Drive))
//	svc, err := google.NewDriveService(ctx, ts)
//
// # OAuth2 Scopes
//
// Service account credentials request:
//   - https://www.googleapis.com/auth/drive.readonly
//   - https://www.googleapis.com/auth/cloud-vision
//
// A static access token is used as-is; it must already carry these scopes.
package google
