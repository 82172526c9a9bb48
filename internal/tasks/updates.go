package tasks

import (
	"fmt"

	"github.com/cyrkaade/hackathon-lumina/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	QueueJobs Phase = iota
	UploadCalls
	WriteReport
)

func (p Phase) String() string {
	switch p {
	case QueueJobs:
		return "queue_jobs"
	case UploadCalls:
		return "upload_calls"
	case WriteReport:
		return "write_report"
	default:
		return ""
	}
}

func queuedJobsUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   QueueJobs,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Queued %d recordings for upload", total),
	}
}

func uploadStartedUpdate(step, total int, filename string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadCalls,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Uploading: %s...", step, total, filename),
	}
}

func uploadCompletedUpdate(step, total int, sub *models.Submission) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadCalls,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (score %.1f)", step, total, sub.Filename(), sub.TotalScore()),
		Data:    sub,
	}
}

func uploadFailedUpdate(step, total int, sub *models.Submission, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadCalls,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, sub.Filename(), err),
		Data:    sub,
	}
}

func reportWrittenUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteReport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Batch report written: %s", path),
	}
}
