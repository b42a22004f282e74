package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// Image is the payload submitted for analysis.
type Image struct {
	Filename  string
	MediaType string
	Data      []byte
}

// Prediction is the classification half of a backend result.
// Immutable once received.
type Prediction struct {
	DiseaseName   string  `json:"disease_name"`
	Confidence    float64 `json:"confidence"`
	SeverityLevel int     `json:"severity_level"`
	ImageQuality  string  `json:"image_quality"`
	GradcamImage  string  `json:"gradcam_image,omitempty"`
	Message       string  `json:"message,omitempty"`
}

// Recommendation is the treatment-advice half of a backend result.
type Recommendation struct {
	Text      string `json:"recommendation"`
	Timestamp string `json:"timestamp"`
}

// Result pairs a prediction with its recommendation. The two halves always
// come from the same backend response.
type Result struct {
	Prediction     Prediction
	Recommendation Recommendation
}

type envelope struct {
	Success        bool            `json:"success"`
	Error          string          `json:"error"`
	Prediction     *Prediction     `json:"prediction"`
	Recommendation *Recommendation `json:"recommendation"`
}

// ServiceError is a failure reported by the analysis backend: either a
// non-2xx status or a success:false envelope. Message holds the server's
// own error text when it sent one.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("analysis service error (status %d)", e.Status)
}

// Client calls the prediction/recommendation backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a backend client. A zero timeout means the request
// runs until it settles.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Analyze submits the image and language code as multipart form data and
// decodes the combined prediction + recommendation envelope.
func (c *Client) Analyze(ctx context.Context, img Image, languageCode string) (*Result, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, img.Filename))
	header.Set("Content-Type", img.MediaType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, fmt.Errorf("writing image part: %w", err)
	}
	if err := w.WriteField("language_code", languageCode); err != nil {
		return nil, fmt.Errorf("writing language_code field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/predict-and-recommend", body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading analysis response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if !ok {
			return nil, &ServiceError{Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("decoding analysis response: %w", err)
	}

	if !ok || !env.Success {
		c.logger.Warn("analysis rejected", "status", resp.StatusCode, "error", env.Error)
		return nil, &ServiceError{Status: resp.StatusCode, Message: env.Error}
	}
	if env.Prediction == nil || env.Recommendation == nil {
		return nil, fmt.Errorf("analysis response missing prediction or recommendation")
	}

	return &Result{
		Prediction:     *env.Prediction,
		Recommendation: *env.Recommendation,
	}, nil
}
