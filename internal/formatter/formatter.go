// package formatter provides functions to export assessment data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cyrkaade/hackathon-lumina/internal/models"
	"github.com/pquerna/ffjson/ffjson"
)

// scoreMetric pairs a category label with its score for ordered rendering.
type scoreMetric struct {
	Name  string
	Score float64
}

// assessmentMetrics returns the per-category scores in display order.
func assessmentMetrics(a *models.Assessment) []scoreMetric {
	return []scoreMetric{
		{"Emotion", a.EmotionScore},
		{"Resolution", a.ResolutionScore},
		{"Communication", a.CommunicationScore},
		{"Professionalism", a.ProfessionalismScore},
		{"Empathy", a.EmpathyScore},
		{"Efficiency", a.EfficiencyScore},
	}
}

// fmtScore renders a 0-100 score with one decimal place.
func fmtScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// displayName falls back to a numeric label when the backend omits a worker's name.
func displayName(r models.WorkerRanking) string {
	if r.WorkerName != "" {
		return r.WorkerName
	}
	return fmt.Sprintf("Worker %d", r.WorkerID)
}

// ExportAssessmentCSV converts an assessment to CSV format with one record covering all scoring categories.
func ExportAssessmentCSV(a *models.Assessment) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Call ID", "Worker ID", "Total Score", "Grade", "Emotion", "Resolution", "Communication", "Professionalism", "Empathy", "Efficiency", "Timestamp"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	record := []string{
		a.CallID,
		strconv.Itoa(a.WorkerID),
		fmtScore(a.TotalScore),
		a.PerformanceGrade,
		fmtScore(a.EmotionScore),
		fmtScore(a.ResolutionScore),
		fmtScore(a.CommunicationScore),
		fmtScore(a.ProfessionalismScore),
		fmtScore(a.EmpathyScore),
		fmtScore(a.EfficiencyScore),
		a.Timestamp.Format(time.RFC3339),
	}
	if err := writer.Write(record); err != nil {
		return nil, fmt.Errorf("failed to write CSV record: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportRankingsCSV converts a worker leaderboard to CSV format with columns: Rank, Worker ID, Name, Department, Average Score, Total Calls
func ExportRankingsCSV(rankings []models.WorkerRanking) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "Worker ID", "Name", "Department", "Average Score", "Total Calls"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, r := range rankings {
		rank := r.Rank
		if rank == 0 {
			rank = i + 1
		}
		record := []string{
			strconv.Itoa(rank),
			strconv.Itoa(r.WorkerID),
			r.WorkerName,
			r.Department,
			fmtScore(r.AverageScore),
			strconv.Itoa(r.TotalCalls),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportAssessmentMarkdown converts an assessment to Markdown format with per-category scores and coaching notes
func ExportAssessmentMarkdown(a *models.Assessment) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Call Assessment: %s\n\n", a.CallID))
	buf.WriteString(fmt.Sprintf("**Worker**: #%d\n", a.WorkerID))

	if a.PerformanceGrade != "" {
		buf.WriteString(fmt.Sprintf("**Total Score**: %s (%s)\n", fmtScore(a.TotalScore), a.PerformanceGrade))
	} else {
		buf.WriteString(fmt.Sprintf("**Total Score**: %s\n", fmtScore(a.TotalScore)))
	}

	if !a.Timestamp.IsZero() {
		buf.WriteString(fmt.Sprintf("**Assessed**: %s\n", a.Timestamp.Format("2006-01-02 15:04")))
	}

	buf.WriteString("\n## Scores\n\n")
	for _, m := range assessmentMetrics(a) {
		buf.WriteString(fmt.Sprintf("- %s: %s\n", m.Name, fmtScore(m.Score)))
	}

	if len(a.Breakdown.Strengths) > 0 {
		buf.WriteString("\n## Strengths\n\n")
		for _, s := range a.Breakdown.Strengths {
			buf.WriteString(fmt.Sprintf("- %s\n", s))
		}
	}

	if len(a.Breakdown.Improvements) > 0 {
		buf.WriteString("\n## Areas for Improvement\n\n")
		for _, s := range a.Breakdown.Improvements {
			buf.WriteString(fmt.Sprintf("- %s\n", s))
		}
	}

	return buf.Bytes(), nil
}

// ExportRankingsText converts a worker leaderboard to plain text format
func ExportRankingsText(rankings []models.WorkerRanking) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("Worker Rankings\n")
	buf.WriteString(fmt.Sprintf("Workers: %d\n\n", len(rankings)))

	for i, r := range rankings {
		rank := r.Rank
		if rank == 0 {
			rank = i + 1
		}
		deptPart := ""
		if r.Department != "" {
			deptPart = fmt.Sprintf(" (%s)", r.Department)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s - %s avg, %d calls\n", rank, displayName(r), deptPart, fmtScore(r.AverageScore), r.TotalCalls))
	}

	return buf.Bytes(), nil
}

// BatchReportEntry is one submission receipt row in a batch report.
type BatchReportEntry struct {
	Filename   string  `json:"filename"`
	CallID     string  `json:"call_id,omitempty"`
	WorkerID   int     `json:"worker_id"`
	Language   string  `json:"language,omitempty"`
	Status     string  `json:"status"`
	TotalScore float64 `json:"total_score,omitempty"`
	Message    string  `json:"message,omitempty"`
}

// BatchReport summarizes a batch upload run for the report file.
type BatchReport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Total       int                `json:"total"`
	Succeeded   int                `json:"succeeded"`
	Failed      int                `json:"failed"`
	Entries     []BatchReportEntry `json:"entries"`
}

// NewBatchReport builds a report from settled submission receipts.
func NewBatchReport(receipts []*models.Submission) *BatchReport {
	report := &BatchReport{
		GeneratedAt: time.Now().UTC(),
		Total:       len(receipts),
		Entries:     make([]BatchReportEntry, 0, len(receipts)),
	}

	for _, sub := range receipts {
		if sub == nil {
			continue
		}
		entry := BatchReportEntry{
			Filename: sub.Filename(),
			CallID:   sub.CallID(),
			WorkerID: sub.WorkerID(),
			Language: sub.Language(),
			Status:   sub.Status(),
			Message:  sub.Message(),
		}
		if sub.Scored() {
			entry.TotalScore = sub.TotalScore()
		}
		if sub.Status() == models.SubmissionSuccess {
			report.Succeeded++
		} else {
			report.Failed++
		}
		report.Entries = append(report.Entries, entry)
	}

	return report
}

// WriteBatchReport writes a batch report as JSON.
//
// Defaults to batch_report_{epoch}.json as the filename.
func WriteBatchReport(report *BatchReport, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("batch_report_%d.json", time.Now().Unix())
	}

	data, err := ffjson.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal batch report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write batch report: %w", err)
	}

	return path, nil
}
