package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/cyrkaade/hackathon-lumina/internal/models"
	"github.com/cyrkaade/hackathon-lumina/internal/server"
	"github.com/cyrkaade/hackathon-lumina/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcMap = template.FuncMap{
	"score": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
}

// App is the HTMX assessment console.
//
// All pages are server-rendered with html/template; the upload form and the
// latest-assessment panel swap fragments over HTMX, everything else is plain
// navigation.
type App struct {
	svc    services.Service
	logger *log.Logger
	tmpl   *template.Template
	router *server.BasicRouter
}

// NewApp creates the console around an assessment service.
func NewApp(svc services.Service, logger *log.Logger) (*App, error) {
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	app := &App{
		svc:    svc,
		logger: logger,
		tmpl:   tmpl,
	}
	app.routes()
	return app, nil
}

// routes builds the route table with logging and metrics middleware applied.
func (a *App) routes() {
	r := server.NewBasicRouter()
	r.Use(server.Logging(a.logger), server.Metrics())

	r.Handle(http.MethodGet, "/{$}", http.HandlerFunc(a.handleIndex))
	r.Handle(http.MethodPost, "/upload", http.HandlerFunc(a.handleUpload))
	r.Handle(http.MethodGet, "/assessments/latest", http.HandlerFunc(a.handleLatest))
	r.Handle(http.MethodGet, "/assessments/{id}", http.HandlerFunc(a.handleAssessment))
	r.Handle(http.MethodGet, "/workers/rankings", http.HandlerFunc(a.handleRankings))
	r.Handle(http.MethodGet, "/workers/{id}", http.HandlerFunc(a.handleWorker))
	r.Handle(http.MethodGet, "/healthz", http.HandlerFunc(a.handleHealthz))
	r.Handle(http.MethodGet, "/metrics", server.MetricsHandler())

	a.router = r
}

// ServeHTTP implements http.Handler for the whole console.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// render executes a template into a buffer first so failures never produce half-written pages.
func (a *App) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := a.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		a.logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// statusFor maps backend errors to response codes for full-page renders.
func statusFor(err error) int {
	var terr *services.TransportError
	var nerr *services.NetworkError
	switch {
	case errors.As(err, &terr):
		if terr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.As(err, &nerr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage turns a backend error into a line fit for display.
func errorMessage(err error) string {
	var terr *services.TransportError
	var nerr *services.NetworkError
	switch {
	case errors.As(err, &terr):
		return "Backend rejected the request: " + terr.Message
	case errors.As(err, &nerr):
		return "Cannot reach the assessment backend. Is it running?"
	default:
		return err.Error()
	}
}

// isNotFound reports whether the backend answered 404.
func isNotFound(err error) bool {
	var terr *services.TransportError
	return errors.As(err, &terr) && terr.StatusCode == http.StatusNotFound
}

// metricView carries one category score plus its bar width for templates.
type metricView struct {
	Name  string
	Score float64
	Width int
}

// metricViews returns the per-category scores in display order.
func metricViews(a *models.Assessment) []metricView {
	build := func(name string, score float64) metricView {
		width := int(math.Round(score))
		if width < 0 {
			width = 0
		}
		if width > 100 {
			width = 100
		}
		return metricView{Name: name, Score: score, Width: width}
	}

	return []metricView{
		build("Emotion", a.EmotionScore),
		build("Resolution", a.ResolutionScore),
		build("Communication", a.CommunicationScore),
		build("Professionalism", a.ProfessionalismScore),
		build("Empathy", a.EmpathyScore),
		build("Efficiency", a.EfficiencyScore),
	}
}
