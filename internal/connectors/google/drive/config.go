package drive

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

const defaultPageSize = 100

// maxPageSize is the largest page Drive accepts for files.list.
const maxPageSize = 1000

// listFields restricts listing responses to what the walker needs.
const listFields = "nextPageToken, files(id, name, mimeType, size)"

// Config holds Google Drive store configuration.
type Config struct {
	// PageSize is the page size for listing requests.
	PageSize int64
	// RequestsPerSecond overrides the default Drive rate limit when positive.
	RequestsPerSecond float64
	// AllDrives includes shared drive content in listings and downloads.
	AllDrives bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		PageSize:  defaultPageSize,
		AllDrives: true,
	}
}

// ParseConfig extracts store configuration from drive settings.
func ParseConfig(s domain.DriveSettings) Config {
	cfg := DefaultConfig()
	if s.PageSize > 0 {
		cfg.PageSize = min(s.PageSize, maxPageSize)
	}
	if s.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = s.RequestsPerSecond
	}
	return cfg
}

var folderURLPattern = regexp.MustCompile(`/folders/([A-Za-z0-9_-]+)`)

// ParseFolderID accepts a bare folder id or a Drive folder URL and returns the id.
func ParseFolderID(input string) string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "://") {
		return input
	}
	u, err := url.Parse(input)
	if err != nil {
		return input
	}
	if m := folderURLPattern.FindStringSubmatch(u.Path); m != nil {
		return m[1]
	}
	if id := u.Query().Get("id"); id != "" {
		return id
	}
	return input
}
