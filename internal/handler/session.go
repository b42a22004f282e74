package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cropguard/console/internal/media"
	"github.com/cropguard/console/internal/render"
	"github.com/cropguard/console/internal/report"
	"github.com/cropguard/console/internal/security"
	"github.com/cropguard/console/internal/upload"
)

type preferenceReader interface {
	Language(ctx context.Context) (string, error)
}

// SessionHandler exposes the upload session over HTTP. It renders
// controller snapshots; all mutation goes through named transitions.
type SessionHandler struct {
	BaseHandler
	controller      *upload.Controller
	prefs           preferenceReader
	limiter         *security.Limiter
	maxUploadSizeMB int
	defaultLanguage string
}

func NewSessionHandler(logger *slog.Logger, c *upload.Controller, prefs preferenceReader, limiter *security.Limiter, maxUploadSizeMB int, defaultLanguage string) *SessionHandler {
	return &SessionHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		controller:      c,
		prefs:           prefs,
		limiter:         limiter,
		maxUploadSizeMB: maxUploadSizeMB,
		defaultLanguage: defaultLanguage,
	}
}

type sessionView struct {
	State        upload.State     `json:"state"`
	Message      string           `json:"message,omitempty"`
	File         *upload.FileInfo `json:"file,omitempty"`
	LanguageCode string           `json:"languageCode,omitempty"`
	Result       *resultView      `json:"result,omitempty"`
}

type resultView struct {
	DiseaseName    string                `json:"diseaseName"`
	Confidence     float64               `json:"confidence"`
	SeverityLevel  int                   `json:"severityLevel"`
	ImageQuality   string                `json:"imageQuality"`
	Severity       render.SeverityGauge  `json:"severity"`
	Recommendation []render.ContentBlock `json:"recommendation"`
	Timestamp      string                `json:"timestamp"`
	HasGradcam     bool                  `json:"hasGradcam"`
}

func viewOf(snap upload.Snapshot) sessionView {
	view := sessionView{
		State:        snap.State,
		Message:      snap.Message,
		File:         snap.File,
		LanguageCode: snap.LanguageCode,
	}
	if snap.State == upload.StateSuccess && snap.Prediction != nil && snap.Recommendation != nil {
		view.Result = &resultView{
			DiseaseName:    snap.Prediction.DiseaseName,
			Confidence:     snap.Prediction.Confidence,
			SeverityLevel:  snap.Prediction.SeverityLevel,
			ImageQuality:   snap.Prediction.ImageQuality,
			Severity:       render.MapSeverity(snap.Prediction.SeverityLevel),
			Recommendation: render.Format(snap.Recommendation.Text),
			Timestamp:      snap.Recommendation.Timestamp,
			HasGradcam:     snap.Prediction.GradcamImage != "",
		}
	}
	return view
}

// Snapshot returns the current session view.
func (h *SessionHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.writeJSON(w, http.StatusOK, viewOf(h.controller.Snapshot()), nil); err != nil {
		h.logError(r, err)
	}
}

// Stage accepts a multipart image upload and stages it on the session.
func (h *SessionHandler) Stage(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow() {
		h.errorResponse(w, r, http.StatusTooManyRequests, "Please try again later")
		return
	}

	maxSize := int64(h.maxUploadSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "Form too large or invalid")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	candidate := &upload.CandidateFile{
		Filename:  media.SanitizeFilename(header.Filename),
		MediaType: media.Sniff(data),
		SizeBytes: int64(len(data)),
		Data:      data,
	}

	if err := h.controller.SelectFile(candidate); err != nil {
		h.transitionError(w, r, err)
		return
	}
	h.respondSnapshot(w, r)
}

// Submit sends the staged image to the backend. The language code comes
// from the request body, then the stored preference, then the default.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LanguageCode string `json:"language_code"`
	}
	// An empty body is fine; the stored preference covers it.
	if r.ContentLength > 0 {
		if err := h.readJSON(w, r, &req); err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	lang := req.LanguageCode
	if lang == "" {
		stored, err := h.prefs.Language(r.Context())
		if err != nil {
			h.Logger.Warn("reading language preference failed", "err", err)
		}
		lang = stored
	}
	if lang == "" {
		lang = h.defaultLanguage
	}

	err := h.controller.Submit(r.Context(), lang)
	if errors.Is(err, upload.ErrSubmitInFlight) || errors.Is(err, upload.ErrInvalidTransition) {
		h.transitionError(w, r, err)
		return
	}
	// Analysis failures land the session in the failed state; the snapshot
	// carries the message, so the response itself is still a 200.
	h.respondSnapshot(w, r)
}

// Retry returns a failed session to previewing (or idle without a file).
func (h *SessionHandler) Retry(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Retry(); err != nil {
		h.transitionError(w, r, err)
		return
	}
	h.respondSnapshot(w, r)
}

// Reset clears the session back to idle.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Reset(); err != nil {
		h.transitionError(w, r, err)
		return
	}
	h.respondSnapshot(w, r)
}

// Gradcam serves the decoded Grad-CAM overlay for the current result.
func (h *SessionHandler) Gradcam(w http.ResponseWriter, r *http.Request) {
	snap := h.controller.Snapshot()
	if snap.State != upload.StateSuccess || snap.Prediction == nil || snap.Prediction.GradcamImage == "" {
		h.errorResponse(w, r, http.StatusNotFound, "no gradcam image available")
		return
	}

	img, err := media.DecodeGradcam(snap.Prediction.GradcamImage)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(img)
}

// Report exports the current result as a downloadable text or PDF file.
func (h *SessionHandler) Report(w http.ResponseWriter, r *http.Request) {
	snap := h.controller.Snapshot()
	if snap.State != upload.StateSuccess || snap.Prediction == nil || snap.Recommendation == nil {
		h.errorResponse(w, r, http.StatusNotFound, "no completed analysis to export")
		return
	}

	switch r.URL.Query().Get("format") {
	case "pdf":
		data, err := report.BuildPDF(snap.Prediction, snap.Recommendation)
		if err != nil {
			h.serverErrorResponse(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(time.Now(), "pdf")+`"`)
		_, _ = w.Write(data)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(time.Now(), "txt")+`"`)
		_, _ = io.WriteString(w, report.Build(snap.Prediction, snap.Recommendation))
	}
}

func (h *SessionHandler) respondSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.writeJSON(w, http.StatusOK, viewOf(h.controller.Snapshot()), nil); err != nil {
		h.logError(r, err)
	}
}

func (h *SessionHandler) transitionError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *upload.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.errorResponse(w, r, http.StatusBadRequest, vErr.Reason)
	case errors.Is(err, upload.ErrSubmitInFlight), errors.Is(err, upload.ErrInvalidTransition):
		h.errorResponse(w, r, http.StatusConflict, err.Error())
	default:
		h.serverErrorResponse(w, r, err)
	}
}
