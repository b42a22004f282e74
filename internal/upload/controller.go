package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cropguard/console/internal/analysis"
	"github.com/google/uuid"
)

// DefaultLanguage is used when no language code is supplied or stored.
const DefaultLanguage = "en"

const genericFailureMessage = "Analysis failed. Please try again."

var (
	// ErrSubmitInFlight is returned when a transition is attempted while a
	// request is already running. The session is left untouched.
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrInvalidTransition is returned when an action is not legal in the
	// session's current state.
	ErrInvalidTransition = errors.New("action not valid in current state")
)

// Analyzer runs one image through the remote backend.
type Analyzer interface {
	Analyze(ctx context.Context, img analysis.Image, languageCode string) (*analysis.Result, error)
}

// Preferences persists the last-used language code.
type Preferences interface {
	SetLanguage(ctx context.Context, code string) error
}

// Controller owns the single upload session and is the only writer to it.
// All transitions are serialized through its lock; the backend call itself
// runs outside the lock, with the submitting state acting as the gate that
// keeps at most one request in flight.
type Controller struct {
	mu       sync.Mutex
	sess     *session
	analyzer Analyzer
	prefs    Preferences
	logger   *slog.Logger
}

func NewController(analyzer Analyzer, prefs Preferences, logger *slog.Logger) *Controller {
	return &Controller{
		sess:     &session{id: uuid.New(), state: StateIdle},
		analyzer: analyzer,
		prefs:    prefs,
		logger:   logger,
	}
}

// Snapshot returns an immutable view of the session.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.snapshot()
}

// SelectFile stages a candidate image. Legal from idle, previewing, and
// failed. A validation rejection surfaces its reason on the session without
// changing state; an accepted file replaces any previously held one and
// moves the session to previewing.
func (c *Controller) SelectFile(file *CandidateFile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.sess.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateSuccess:
		return fmt.Errorf("%w: reset before selecting a new image", ErrInvalidTransition)
	}

	if err := Validate(file); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			c.sess.message = vErr.Reason
		}
		return err
	}

	c.sess.file = file
	c.sess.state = StatePreviewing
	c.sess.message = ""
	c.sess.clearResults()
	c.logger.Info("image staged", "session", c.sess.id, "type", file.MediaType, "size", file.SizeBytes)
	return nil
}

// Submit sends the staged image to the backend. Legal only from previewing;
// while a request is in flight every further transition is rejected without
// touching the session. On success the result pair is stored atomically and
// the language code is persisted; on any failure the session moves to
// failed with a human-readable message.
func (c *Controller) Submit(ctx context.Context, languageCode string) error {
	c.mu.Lock()
	if c.sess.state == StateSubmitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if c.sess.state != StatePreviewing {
		c.mu.Unlock()
		return fmt.Errorf("%w: no staged image to submit", ErrInvalidTransition)
	}
	if languageCode == "" {
		languageCode = DefaultLanguage
	}
	file := c.sess.file
	c.sess.state = StateSubmitting
	c.sess.languageCode = languageCode
	c.sess.message = ""
	c.mu.Unlock()

	img := analysis.Image{
		Filename:  file.Filename,
		MediaType: file.MediaType,
		Data:      file.Data,
	}
	result, err := c.analyzer.Analyze(ctx, img, languageCode)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.sess.state = StateFailed
		c.sess.message = failureMessage(err)
		c.logger.Warn("analysis failed", "session", c.sess.id, "err", err)
		return err
	}

	c.sess.prediction = &result.Prediction
	c.sess.recommendation = &result.Recommendation
	c.sess.state = StateSuccess
	c.sess.message = result.Prediction.Message

	if err := c.prefs.SetLanguage(ctx, languageCode); err != nil {
		// Preference persistence is best-effort; the result still stands.
		c.logger.Warn("saving language preference failed", "err", err)
	}

	c.logger.Info("analysis complete",
		"session", c.sess.id,
		"disease", result.Prediction.DiseaseName,
		"severity", result.Prediction.SeverityLevel,
	)
	return nil
}

// Retry returns a failed session to previewing when a file is still held,
// otherwise to idle.
func (c *Controller) Retry() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess.state != StateFailed {
		if c.sess.state == StateSubmitting {
			return ErrSubmitInFlight
		}
		return fmt.Errorf("%w: retry is only available after a failure", ErrInvalidTransition)
	}

	c.sess.message = ""
	c.sess.clearResults()
	if c.sess.file != nil {
		c.sess.state = StatePreviewing
	} else {
		c.sess.state = StateIdle
	}
	return nil
}

// Reset clears the held file and results and returns to idle. Rejected only
// while a request is in flight; the session must settle first.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess.state == StateSubmitting {
		return ErrSubmitInFlight
	}

	c.sess.file = nil
	c.sess.clearResults()
	c.sess.message = ""
	c.sess.languageCode = ""
	c.sess.state = StateIdle
	return nil
}

func failureMessage(err error) string {
	var svcErr *analysis.ServiceError
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}
	return genericFailureMessage
}
