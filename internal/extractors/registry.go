package extractors

import (
	"path"
	"strings"
	"sync"

	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// MatchKind says which property of a file a rule matches on.
type MatchKind int

const (
	// MatchSuffix matches the lower-cased file name extension.
	MatchSuffix MatchKind = iota

	// MatchMIME matches the MIME type exactly, or a whole family when the
	// rule pattern ends in "/*".
	MatchMIME
)

// Rule is one row of the dispatch table.
type Rule struct {
	Kind      MatchKind
	Pattern   string
	Extractor driven.Extractor
}

func (r Rule) matches(ext, mimeType string) bool {
	switch r.Kind {
	case MatchSuffix:
		return ext != "" && ext == r.Pattern
	case MatchMIME:
		if family, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
			return strings.HasPrefix(mimeType, family+"/")
		}
		return mimeType == r.Pattern
	default:
		return false
	}
}

// Registry dispatches files to extractors through an ordered rule table.
// Every suffix rule precedes every MIME rule, and within each group rules
// keep registration order, so the file name always wins over the MIME type.
type Registry struct {
	mu          sync.RWMutex
	suffixRules []Rule
	mimeRules   []Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds the suffix and MIME rules of extractor.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range extractor.Extensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.suffixRules = append(r.suffixRules, Rule{Kind: MatchSuffix, Pattern: ext, Extractor: extractor})
	}
	for _, mimeType := range extractor.MIMETypes() {
		r.mimeRules = append(r.mimeRules, Rule{
			Kind:      MatchMIME,
			Pattern:   strings.ToLower(mimeType),
			Extractor: extractor,
		})
	}
}

// Resolve returns the first extractor whose rule matches name or mimeType.
func (r *Registry) Resolve(name, mimeType string) (driven.Extractor, bool) {
	ext := strings.ToLower(path.Ext(name))
	mimeType = normaliseMIME(mimeType)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rule := range r.suffixRules {
		if rule.matches(ext, mimeType) {
			return rule.Extractor, true
		}
	}
	for _, rule := range r.mimeRules {
		if rule.matches(ext, mimeType) {
			return rule.Extractor, true
		}
	}
	return nil, false
}

// Rules returns the dispatch table in evaluation order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.suffixRules)+len(r.mimeRules))
	rules = append(rules, r.suffixRules...)
	return append(rules, r.mimeRules...)
}

// normaliseMIME lower-cases a MIME type and drops any parameters.
func normaliseMIME(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
