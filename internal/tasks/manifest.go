package tasks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cyrkaade/hackathon-lumina/internal/shared"
	"github.com/pquerna/ffjson/ffjson"
)

// SubmissionJob describes a single call recording to upload.
type SubmissionJob struct {
	FilePath string `json:"file_path" validate:"required"`
	WorkerID int    `json:"worker_id" validate:"required,min=1"`
	Language string `json:"language,omitempty" validate:"omitempty,len=2"`
}

// Manifest is the on-disk format for batch upload runs.
type Manifest struct {
	Language string          `json:"language,omitempty"` // Default language for jobs that omit one
	Jobs     []SubmissionJob `json:"jobs"`
}

// audioExtensions lists the recording formats the backend accepts.
var audioExtensions = map[string]bool{
	".wav": true,
	".mp3": true,
	".m4a": true,
}

// IsAudioFile reports whether the filename has a supported recording extension.
func IsAudioFile(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// LoadManifest reads a batch manifest from disk.
//
// The manifest is a JSON document listing recordings to upload:
//
//	{
//	  "language": "ru",
//	  "jobs": [
//	    {"file_path": "calls/morning_01.wav", "worker_id": 7},
//	    {"file_path": "calls/morning_02.wav", "worker_id": 9, "language": "kk"}
//	  ]
//	}
//
// Relative file paths are resolved against the manifest's directory.
func LoadManifest(path string) ([]SubmissionJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := ffjson.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("%w: failed to parse manifest: %v", shared.ErrInvalidInput, err)
	}
	if len(manifest.Jobs) == 0 {
		return nil, fmt.Errorf("%w: manifest contains no jobs", shared.ErrInvalidInput)
	}

	base := filepath.Dir(path)
	jobs := make([]SubmissionJob, len(manifest.Jobs))
	for i, job := range manifest.Jobs {
		if job.Language == "" {
			job.Language = manifest.Language
		}
		if job.FilePath != "" && !filepath.IsAbs(job.FilePath) {
			job.FilePath = filepath.Join(base, job.FilePath)
		}
		jobs[i] = job
	}

	return jobs, nil
}

// ScanDirectory builds submission jobs from every recording in a directory.
//
// Only files with supported audio extensions are included; subdirectories are
// not walked. Entries are returned in directory order (sorted by filename).
func ScanDirectory(dir string, workerID int, language string) ([]SubmissionJob, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var jobs []SubmissionJob
	for _, entry := range entries {
		if entry.IsDir() || !IsAudioFile(entry.Name()) {
			continue
		}
		jobs = append(jobs, SubmissionJob{
			FilePath: filepath.Join(dir, entry.Name()),
			WorkerID: workerID,
			Language: language,
		})
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: no audio recordings found in %s", shared.ErrInvalidInput, dir)
	}

	return jobs, nil
}
