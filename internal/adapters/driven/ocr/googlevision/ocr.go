// Package googlevision implements OCR through the Google Cloud Vision API.
// This is the default cloud provider: text detection on a rendered page
// image, full text annotation preferred over individual snippets.
package googlevision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.OCRService = (*Service)(nil)

// featureTextDetection is the Vision API feature for OCR.
const featureTextDetection = "TEXT_DETECTION"

// Config holds Google Vision credentials.
// At most one of CredentialsFile and APIKey is set; with neither,
// application default credentials are resolved.
type Config struct {
	CredentialsFile string
	APIKey          string
}

// Service recognises text using the Vision API.
type Service struct {
	svc *vision.Service
}

// NewService creates a Vision OCR service.
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	default:
		creds, err := google.FindDefaultCredentials(ctx, vision.CloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("resolve default credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}

	svc, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vision service: %w", err)
	}
	return &Service{svc: svc}, nil
}

// Recognise extracts text from the page image.
// A blank page yields an empty string, not an error.
func (s *Service) Recognise(ctx context.Context, image []byte) (string, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*vision.Feature{{Type: featureTextDetection}},
		}},
	}

	resp, err := s.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %s", domain.ErrRateLimited, apiErr.Message)
		}
		return "", fmt.Errorf("%w: %s", domain.ErrOCRProvider, err.Error())
	}
	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("%w: empty annotation response", domain.ErrOCRProvider)
	}

	return extractText(resp.Responses[0])
}

// Provider identifies the backing provider.
func (s *Service) Provider() domain.OCRProvider {
	return domain.OCRProviderGoogleVision
}

// Close releases resources. The REST client holds none.
func (s *Service) Close() error {
	return nil
}

// extractText pulls the recognised text out of one image's annotation.
// Per-image errors come back inside the response body with a 200 status,
// so they are surfaced here with the provider's message kept verbatim.
func extractText(r *vision.AnnotateImageResponse) (string, error) {
	if r.Error != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrOCRProvider, r.Error.Message)
	}
	if r.FullTextAnnotation != nil {
		return strings.TrimSpace(r.FullTextAnnotation.Text), nil
	}
	if len(r.TextAnnotations) > 0 {
		return strings.TrimSpace(r.TextAnnotations[0].Description), nil
	}
	return "", nil
}
