package upload

// MaxFileSize is the staging ceiling for a candidate image.
const MaxFileSize = 10 << 20 // 10 MiB

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ValidationError is a pre-submission rejection with a user-facing reason.
// It never reaches the network boundary.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate applies the staging rules in order: presence, format, size.
// The first failing rule wins.
func Validate(file *CandidateFile) error {
	if file == nil || len(file.Data) == 0 {
		return &ValidationError{Reason: "No image file provided"}
	}
	if !allowedTypes[file.MediaType] {
		return &ValidationError{Reason: "File must be JPG or PNG format"}
	}
	if file.SizeBytes > MaxFileSize {
		return &ValidationError{Reason: "File size must be under 10MB"}
	}
	return nil
}
