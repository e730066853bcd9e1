package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks. Implementations must be safe for
// concurrent use since passes may run from several documents at once.
type Recorder interface {
	// ObservePass records the duration of one full extraction pass.
	ObservePass(d time.Duration)
	// IncImage counts one embed of kind ("internal"/"external") by result.
	IncImage(kind string, result ResultLabel)
	// IncRender counts one rendering of a document in mode ("live"/"reading").
	IncRender(mode string, result ResultLabel)
	// SetCaptionsAttached records how many captions the last render attached.
	SetCaptionsAttached(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePass(time.Duration) {}
func (NoopRecorder) IncImage(string, ResultLabel) {}
func (NoopRecorder) IncRender(string, ResultLabel) {}
func (NoopRecorder) SetCaptionsAttached(int) {}
