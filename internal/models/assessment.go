package models

import (
	"time"
)

// Assessment is the full scoring result the backend produces for one call.
//
// Every field is backend-owned. The client decodes the response body once and
// renders the values as received; score weighting and grading happen server-side.
type Assessment struct {
	CallID               string         `json:"call_id"`
	WorkerID             int            `json:"worker_id"`
	TotalScore           float64        `json:"total_score"`
	PerformanceGrade     string         `json:"performance_grade"`
	EmotionScore         float64        `json:"emotion_score"`
	ResolutionScore      float64        `json:"resolution_score"`
	CommunicationScore   float64        `json:"communication_score"`
	ProfessionalismScore float64        `json:"professionalism_score"`
	EmpathyScore         float64        `json:"empathy_score"`
	EfficiencyScore      float64        `json:"efficiency_score"`
	Breakdown            ScoreBreakdown `json:"breakdown"`
	Timestamp            time.Time      `json:"timestamp"`
}

// ScoreBreakdown carries the qualitative detail attached to an assessment.
type ScoreBreakdown struct {
	Strengths        []string       `json:"strengths"`
	Improvements     []string       `json:"improvements"`
	DetailedAnalysis map[string]any `json:"detailed_analysis"`
}

// UploadResult is the envelope returned by the upload endpoint.
//
// A 2xx response can still describe a failed assessment: the backend reports
// processing errors in-band with Status "error" and a nil Assessment. Callers
// must branch on Succeeded rather than on the transport outcome alone.
type UploadResult struct {
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	Assessment *Assessment `json:"assessment"`
}

// Succeeded reports whether the backend accepted and scored the call.
func (r *UploadResult) Succeeded() bool {
	return r.Status == "success"
}

// WorkerPerformance aggregates a worker's assessment history over a period.
type WorkerPerformance struct {
	WorkerID          int          `json:"worker_id"`
	AverageScore      float64      `json:"average_score"`
	TotalCalls        int          `json:"total_calls"`
	Trend             string       `json:"trend"`
	Period            string       `json:"period"`
	RecentAssessments []Assessment `json:"recent_assessments"`
}

// WorkerRanking is one row of the worker leaderboard.
type WorkerRanking struct {
	Rank         int     `json:"rank"`
	WorkerID     int     `json:"worker_id"`
	WorkerName   string  `json:"worker_name"`
	Department   string  `json:"department"`
	AverageScore float64 `json:"average_score"`
	TotalCalls   int     `json:"total_calls"`
}

// HealthStatus is the backend health probe response.
type HealthStatus struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Mode     string          `json:"mode"`
	Features map[string]bool `json:"features"`
}
