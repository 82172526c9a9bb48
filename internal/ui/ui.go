package ui

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cyrkaade/hackathon-lumina/internal/models"
	"github.com/cyrkaade/hackathon-lumina/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PickerView ViewState = iota
	UploadView
	ResultView
	RankingsView
)

// Model represents the TUI application state.
//
// An upload is a little state machine: idle in [PickerView], in flight in
// [UploadView], settled in [ResultView]. uploadSeq numbers each attempt so a
// settle from a cancelled or superseded attempt can never overwrite a newer
// one.
type Model struct {
	ctx           context.Context
	view          ViewState
	svc           services.Service
	width         int
	height        int
	picker        filepicker.Model
	spin          spinner.Model
	language      string
	notice        string
	uploading     string
	uploadSeq     int
	outcome       *uploadOutcome
	rankingList   list.Model
	rankingsReady bool
	err           error
	help          help.Model
	keys          keyMap
}

// uploadOutcome is one settled upload. assessment is nil when the call could
// not be scored, with message holding the reason.
type uploadOutcome struct {
	filename   string
	assessment *models.Assessment
	message    string
}

// NewModel creates a new TUI model with the provided dependencies.
//
// startDir is where the file picker opens; language is the initial assessment
// language and defaults to Russian.
func NewModel(ctx context.Context, svc services.Service, startDir, language string) *Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".wav", ".mp3", ".m4a"}
	fp.CurrentDirectory = startDir

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = NewStyle("#7D56F4")

	if language == "" {
		language = "ru"
	}

	return &Model{
		ctx:      ctx,
		view:     PickerView,
		svc:      svc,
		picker:   fp,
		spin:     sp,
		language: language,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by reading the picker's starting directory.
func (m *Model) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.rankingsReady {
			m.rankingList.SetSize(msg.Width-4, msg.Height-8)
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.err != nil {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.err = nil
			}
			return m, nil
		}

		switch m.view {
		case PickerView:
			return m.handlePickerKeys(msg)
		case UploadView:
			return m.handleUploadKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		case RankingsView:
			return m.handleRankingsKeys(msg)
		}

	case spinner.TickMsg:
		if m.view != UploadView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case uploadSettledMsg:
		if msg.seq != m.uploadSeq {
			return m, nil
		}
		m.uploading = ""
		m.outcome = settleOutcome(msg)
		m.view = ResultView
		return m, nil

	case rankingsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.rankings))
		for i, r := range msg.rankings {
			if r.Rank == 0 {
				r.Rank = i + 1
			}
			items[i] = rankingItem{ranking: r}
		}
		m.rankingList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.rankingList.Title = "Worker Rankings"
		if m.width > 0 {
			m.rankingList.SetSize(m.width-4, m.height-8)
		}
		m.rankingsReady = true
		m.view = RankingsView
		return m, nil
	}

	return m.updateComponents(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" +
			styles.help.Render("esc to go back, q to quit")
	}

	switch m.view {
	case PickerView:
		return m.renderPicker()
	case UploadView:
		return m.renderUpload()
	case ResultView:
		return m.renderResult()
	case RankingsView:
		return m.renderRankings()
	default:
		return ""
	}
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.toggleLanguage()
		return m, nil
	case "r":
		return m, m.fetchRankings()
	}

	m.notice = ""

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		return m, tea.Batch(m.startUpload(path), m.spin.Tick)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.notice = fmt.Sprintf("%s is not a call recording (.wav, .mp3, .m4a)", filepath.Base(path))
	}

	return m, cmd
}

func (m *Model) handleUploadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		// Abandon the attempt. The request keeps running but its settle
		// carries a stale seq and will be dropped.
		m.uploadSeq++
		m.uploading = ""
		m.view = PickerView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.outcome = nil
		m.view = PickerView
		return m, nil
	case "r":
		return m, m.fetchRankings()
	}
	return m, nil
}

func (m *Model) handleRankingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PickerView
		return m, nil
	}

	var cmd tea.Cmd
	m.rankingList, cmd = m.rankingList.Update(msg)
	return m, cmd
}

// updateComponents routes non-key messages to the active view's component.
func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PickerView:
		m.picker, cmd = m.picker.Update(msg)
	case RankingsView:
		if m.rankingsReady {
			m.rankingList, cmd = m.rankingList.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) toggleLanguage() {
	if m.language == "ru" {
		m.language = "kk"
	} else {
		m.language = "ru"
	}
}

// startUpload begins a new upload attempt and moves to [UploadView].
func (m *Model) startUpload(path string) tea.Cmd {
	m.uploadSeq++
	seq := m.uploadSeq
	filename := filepath.Base(path)
	language := m.language

	m.uploading = filename
	m.view = UploadView

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadSettledMsg{seq: seq, filename: filename, err: err}
		}
		defer f.Close()

		res, err := m.svc.UploadCall(m.ctx, f, filename, language)
		return uploadSettledMsg{seq: seq, filename: filename, result: res, err: err}
	}
}

func (m *Model) fetchRankings() tea.Cmd {
	return func() tea.Msg {
		rankings, err := m.svc.GetWorkerRankings(m.ctx, "", 10)
		return rankingsFetchedMsg{rankings: rankings, err: err}
	}
}

// settleOutcome folds an upload settle into its display form.
func settleOutcome(msg uploadSettledMsg) *uploadOutcome {
	out := &uploadOutcome{filename: msg.filename}

	switch {
	case msg.err != nil:
		out.message = msg.err.Error()
	case msg.result == nil || !msg.result.Succeeded():
		out.message = "the backend could not assess this recording"
		if msg.result != nil && msg.result.Message != "" {
			out.message = msg.result.Message
		}
	case msg.result.Assessment == nil:
		out.message = "backend returned no assessment"
	default:
		out.assessment = msg.result.Assessment
	}

	return out
}

func (m *Model) renderPicker() string {
	title := styles.title.Render("Pick a call recording")
	lang := styles.warn.Render(fmt.Sprintf("Language: %s", strings.ToUpper(m.language)))

	var notice string
	if m.notice != "" {
		notice = "\n" + styles.err.Render(m.notice)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.language, m.keys.rankings, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s\n\n%s", title, lang, notice, m.picker.View(), helpView)
}

func (m *Model) renderUpload() string {
	title := styles.title.Render("Assessing Call")
	body := fmt.Sprintf("%s Uploading %s...", m.spin.View(), m.uploading)
	note := styles.help.Render("Transcription and scoring can take a minute.")

	cancel := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	helpView := m.help.ShortHelpView([]key.Binding{cancel, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, body, note, helpView)
}

func (m *Model) renderResult() string {
	if m.outcome == nil {
		return styles.err.Render("No result available") + "\n\n" +
			m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	}

	if m.outcome.assessment == nil {
		title := styles.err.Render("✗ Assessment Failed")
		info := fmt.Sprintf("\nFile: %s\nReason: %s\n", m.outcome.filename, m.outcome.message)

		retry := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "try another"))
		helpView := m.help.ShortHelpView([]key.Binding{retry, m.keys.rankings, m.keys.quit})

		return fmt.Sprintf("%s%s\n%s", title, info, helpView)
	}

	a := m.outcome.assessment
	title := styles.ok.Render("✓ Assessment Complete")

	grade := ""
	if a.PerformanceGrade != "" {
		grade = fmt.Sprintf(" (%s)", a.PerformanceGrade)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Call %s · Worker #%d\n", a.CallID, a.WorkerID)
	fmt.Fprintf(&b, "Total score: %.1f%s\n\n", a.TotalScore, grade)
	for _, row := range scoreRows(a) {
		fmt.Fprintf(&b, "%-16s %s %5.1f\n", row.name, scoreBar(row.score), row.score)
	}
	card := styles.card.Render(strings.TrimRight(b.String(), "\n"))

	var notes string
	if len(a.Breakdown.Strengths) > 0 {
		notes += "\n\n" + styles.ok.Render("Strengths")
		for _, s := range a.Breakdown.Strengths {
			notes += "\n  • " + s
		}
	}
	if len(a.Breakdown.Improvements) > 0 {
		notes += "\n\n" + styles.warn.Render("Areas for improvement")
		for _, s := range a.Breakdown.Improvements {
			notes += "\n  • " + s
		}
	}

	again := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "upload another"))
	helpView := m.help.ShortHelpView([]key.Binding{again, m.keys.rankings, m.keys.quit})

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, card, notes, helpView)
}

func (m *Model) renderRankings() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.rankingList.View(), helpView)
}

// scoreRow is one category line on the result card.
type scoreRow struct {
	name  string
	score float64
}

func scoreRows(a *models.Assessment) []scoreRow {
	return []scoreRow{
		{"Emotion", a.EmotionScore},
		{"Resolution", a.ResolutionScore},
		{"Communication", a.CommunicationScore},
		{"Professionalism", a.ProfessionalismScore},
		{"Empathy", a.EmpathyScore},
		{"Efficiency", a.EfficiencyScore},
	}
}

// scoreBar renders a 0-100 score as a ten cell bar.
func scoreBar(v float64) string {
	filled := int(math.Round(v / 10))
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
