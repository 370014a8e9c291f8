package project

// Status is the lifecycle status shown for a project.
type Status string

const (
	StatusProgress Status = "progress"
	StatusFailure  Status = "failure"
	StatusSuccess  Status = "success"
)

// Classify derives a record's status from its creation job.
func Classify(r Record) Status {
	switch r.CreatingProgress.State {
	case CreationNotStarted, CreationSucceeded:
		return StatusSuccess
	case CreationFailed:
		return StatusFailure
	default:
		return StatusProgress
	}
}
