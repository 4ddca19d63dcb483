package driven

import "context"

// TextDetector runs optical character recognition over an image.
type TextDetector interface {
	// DetectText returns text annotations ordered by rank. The first element,
	// when present, is the full detected text block.
	DetectText(ctx context.Context, image []byte) ([]string, error)
}
