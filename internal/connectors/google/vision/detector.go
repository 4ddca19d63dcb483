// Package vision implements text detection over the Cloud Vision API.
package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/vision/v1"

	"github.com/custodia-labs/persona-cli/internal/connectors/google"
	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
)

const featureTextDetection = "TEXT_DETECTION"

// Verify interface compliance.
var _ driven.TextDetector = (*Detector)(nil)

// Detector runs TEXT_DETECTION against images:annotate.
type Detector struct {
	svc     *vision.Service
	limiter *google.RateLimiter
}

// New creates a detector over an authenticated Vision service.
func New(svc *vision.Service) *Detector {
	return &Detector{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceVision, 0),
	}
}

// DetectText returns annotation descriptions in the order Vision ranks them.
// The first element is the full text block when any text was found.
func (d *Detector) DetectText(ctx context.Context, image []byte) ([]string, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*vision.Feature{{Type: featureTextDetection}},
		}},
	}

	resp, err := d.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		d.limiter.Observe(err)
		return nil, google.WrapError(err)
	}
	if len(resp.Responses) == 0 {
		return nil, nil
	}

	first := resp.Responses[0]
	if first.Error != nil && first.Error.Code != 0 {
		return nil, fmt.Errorf("vision: %s", first.Error.Message)
	}

	texts := make([]string, 0, len(first.TextAnnotations))
	for _, a := range first.TextAnnotations {
		texts = append(texts, a.Description)
	}
	return texts, nil
}
