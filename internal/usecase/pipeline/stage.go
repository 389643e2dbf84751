package pipeline

// Failure sentinels embedded in place of stage output when a degraded stage
// could not produce usable content. They are persisted and emailed as-is so a
// reader knows exactly which stage gave up.
const (
	TranscriptFailureSentinel = "Transcription failed: no usable content was produced."
	SummaryFailureSentinel    = "A summary could not be generated for this meeting."
)

// StageStatus classifies a pipeline stage outcome
type StageStatus int

const (
	// StageOK means the stage produced real output
	StageOK StageStatus = iota
	// StageDegraded means the stage failed but the pipeline continues with a
	// sentinel in place of output
	StageDegraded
	// StageFailed means the stage failure aborts the whole run
	StageFailed
)

// StageResult carries one stage's outcome through the pipeline
type StageResult struct {
	Status StageStatus
	Output string
	Err    error
}

// Ok wraps successful stage output
func Ok(output string) StageResult {
	return StageResult{Status: StageOK, Output: output}
}

// Degraded records a stage failure the pipeline survives, substituting
// the given sentinel as output
func Degraded(sentinel string, err error) StageResult {
	return StageResult{Status: StageDegraded, Output: sentinel, Err: err}
}

// Failed records a fatal stage failure
func Failed(err error) StageResult {
	return StageResult{Status: StageFailed, Err: err}
}

// Usable reports whether the output is real content rather than a sentinel
func (r StageResult) Usable() bool {
	return r.Status == StageOK
}
