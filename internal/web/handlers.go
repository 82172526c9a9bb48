package web

import (
	"net/http"
	"strconv"

	"github.com/cyrkaade/hackathon-lumina/internal/models"
	"github.com/cyrkaade/hackathon-lumina/internal/shared"
)

type indexData struct {
	Title string
}

type assessmentData struct {
	Title      string
	Assessment *models.Assessment
	Metrics    []metricView
}

type rankingsData struct {
	Title      string
	Department string
	Limit      int
	Rankings   []models.WorkerRanking
}

type workerData struct {
	Title       string
	Days        int
	Performance *models.WorkerPerformance
}

type messageData struct {
	Title   string
	Message string
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "index.html", indexData{Title: "Console"})
}

// handleUpload accepts a multipart recording and swaps the latest panel with
// the assessment card, or with an error panel when the call cannot be scored.
// Swap responses are always 200 so HTMX renders them.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		a.render(w, http.StatusOK, "error.html", messageData{Message: "Invalid upload form."})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.render(w, http.StatusOK, "error.html", messageData{Message: "Choose a recording to upload."})
		return
	}
	defer file.Close()

	language := r.FormValue("language")

	res, err := a.svc.UploadCall(r.Context(), file, header.Filename, language)
	if err != nil {
		a.logger.Error("upload failed", "file", header.Filename, "error", err)
		a.render(w, http.StatusOK, "error.html", messageData{Message: errorMessage(err)})
		return
	}

	if !res.Succeeded() || res.Assessment == nil {
		msg := res.Message
		if msg == "" {
			msg = "The backend could not assess this recording."
		}
		a.render(w, http.StatusOK, "error.html", messageData{Message: msg})
		return
	}

	a.logger.Info("call assessed", "call_id", res.Assessment.CallID, "score", res.Assessment.TotalScore)
	a.render(w, http.StatusOK, "result.html", assessmentData{
		Assessment: res.Assessment,
		Metrics:    metricViews(res.Assessment),
	})
}

// handleLatest fills the latest-assessment panel on page load.
func (a *App) handleLatest(w http.ResponseWriter, r *http.Request) {
	assessment, err := a.svc.GetLatestAssessment(r.Context())
	if err != nil {
		if isNotFound(err) {
			a.render(w, http.StatusOK, "notice.html", messageData{Message: "No assessments yet. Upload a call to get started."})
			return
		}
		a.render(w, http.StatusOK, "error.html", messageData{Message: errorMessage(err)})
		return
	}

	a.render(w, http.StatusOK, "result.html", assessmentData{
		Assessment: assessment,
		Metrics:    metricViews(assessment),
	})
}

func (a *App) handleAssessment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	assessment, err := a.svc.GetAssessment(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			a.render(w, http.StatusNotFound, "error_page.html", messageData{
				Title:   "Not found",
				Message: "No assessment found for call " + id + ".",
			})
			return
		}
		a.render(w, statusFor(err), "error_page.html", messageData{Title: "Error", Message: errorMessage(err)})
		return
	}

	a.render(w, http.StatusOK, "assessment.html", assessmentData{
		Title:      "Call " + assessment.CallID,
		Assessment: assessment,
		Metrics:    metricViews(assessment),
	})
}

func (a *App) handleRankings(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}

	rankings, err := a.svc.GetWorkerRankings(r.Context(), department, limit)
	if err != nil {
		a.render(w, statusFor(err), "error_page.html", messageData{Title: "Error", Message: errorMessage(err)})
		return
	}

	a.render(w, http.StatusOK, "rankings.html", rankingsData{
		Title:      "Rankings",
		Department: department,
		Limit:      limit,
		Rankings:   rankings,
	})
}

func (a *App) handleWorker(w http.ResponseWriter, r *http.Request) {
	workerID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || workerID < 1 {
		a.render(w, http.StatusBadRequest, "error_page.html", messageData{
			Title:   "Bad request",
			Message: "Worker IDs are positive numbers.",
		})
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 {
		days = 30
	}

	performance, err := a.svc.GetWorkerPerformance(r.Context(), workerID, days)
	if err != nil {
		if isNotFound(err) {
			a.render(w, http.StatusNotFound, "error_page.html", messageData{
				Title:   "Not found",
				Message: "No performance data for worker #" + strconv.Itoa(workerID) + ".",
			})
			return
		}
		a.render(w, statusFor(err), "error_page.html", messageData{Title: "Error", Message: errorMessage(err)})
		return
	}

	a.render(w, http.StatusOK, "worker.html", workerData{
		Title:       "Worker #" + strconv.Itoa(workerID),
		Days:        days,
		Performance: performance,
	})
}

// handleHealthz reports console health plus the backend's reachability.
// It always answers 200; a broken backend shows up in the payload.
func (a *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	status := struct {
		Status  string `json:"status"`
		Backend string `json:"backend"`
	}{Status: "ok", Backend: "unreachable"}

	if health, err := a.svc.GetHealth(r.Context()); err == nil {
		status.Backend = health.Status
	}

	data, err := shared.MarshalJSON(status, false)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
