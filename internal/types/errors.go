package types

import "fmt"

// TranscriptionError reports an unreadable narration track or a recognition
// pass that produced no usable cues. Fatal to the invocation.
type TranscriptionError struct {
	Path string
	Err  error
}

func (e *TranscriptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transcription of %s failed: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("transcription of %s produced no cues", e.Path)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// AssetTooShortError reports a background source with no usable duration.
type AssetTooShortError struct {
	Path     string
	Duration float64
}

func (e *AssetTooShortError) Error() string {
	return fmt.Sprintf("source %s has no usable duration (%.3fs)", e.Path, e.Duration)
}

// EncodeError reports a muxing or codec failure while writing an output file.
// There is no partial-output recovery; the run aborts.
type EncodeError struct {
	Output string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Output, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
