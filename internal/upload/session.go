package upload

import (
	"github.com/cropguard/console/internal/analysis"
	"github.com/google/uuid"
)

// State is the lifecycle position of the upload session.
type State string

const (
	StateIdle       State = "idle"
	StatePreviewing State = "previewing"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// CandidateFile is a staged image. It exists for the duration of one
// submission attempt and is owned by the session until consumed or reset.
type CandidateFile struct {
	Filename  string
	MediaType string
	SizeBytes int64
	Data      []byte
}

// session is the single mutable upload entity. It is only touched through
// controller transitions while the controller's lock is held.
type session struct {
	id             uuid.UUID
	state          State
	file           *CandidateFile
	languageCode   string
	prediction     *analysis.Prediction
	recommendation *analysis.Recommendation
	message        string
}

// FileInfo describes a staged file without exposing its bytes.
type FileInfo struct {
	Filename  string `json:"filename"`
	MediaType string `json:"mediaType"`
	SizeBytes int64  `json:"sizeBytes"`
}

// Snapshot is an immutable view of the session. Rendering surfaces read
// snapshots; they never touch the session itself.
type Snapshot struct {
	ID             uuid.UUID
	State          State
	Message        string
	File           *FileInfo
	LanguageCode   string
	Prediction     *analysis.Prediction
	Recommendation *analysis.Recommendation
}

func (s *session) snapshot() Snapshot {
	snap := Snapshot{
		ID:           s.id,
		State:        s.state,
		Message:      s.message,
		LanguageCode: s.languageCode,
	}
	if s.file != nil {
		snap.File = &FileInfo{
			Filename:  s.file.Filename,
			MediaType: s.file.MediaType,
			SizeBytes: s.file.SizeBytes,
		}
	}
	if s.prediction != nil {
		p := *s.prediction
		snap.Prediction = &p
	}
	if s.recommendation != nil {
		r := *s.recommendation
		snap.Recommendation = &r
	}
	return snap
}

// clearResults drops the current prediction/recommendation pair as a unit.
func (s *session) clearResults() {
	s.prediction = nil
	s.recommendation = nil
}
