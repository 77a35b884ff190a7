// faultwatch-top is a terminal dashboard that polls the faultwatch
// summary endpoint and renders per-sensor fault counts.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"faultwatch/internal/models"
	"faultwatch/internal/report"
)

const pollInterval = 5 * time.Second

func main() {
	_ = godotenv.Load()

	defaultURL := os.Getenv("FAULTWATCH_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	baseURL := flag.String("url", defaultURL, "faultwatch server base URL")
	flag.Parse()

	p := tea.NewProgram(newModel(strings.TrimRight(*baseURL, "/")), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

type summaryMsg report.Summary

type errMsg struct{ err error }

// ── Model ────────────────────────────────────────────────────────────

type model struct {
	baseURL  string
	summary  report.Summary
	lastPoll time.Time
	err      error
	width    int
	height   int
}

func newModel(baseURL string) model {
	return model{baseURL: baseURL}
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) pollSummary() tea.Cmd {
	url := m.baseURL + "/api/v1/readings/summary"
	return func() tea.Msg {
		client := &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Get(url)
		if err != nil {
			return errMsg{err}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("server returned %s", resp.Status)}
		}

		var summary report.Summary
		if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
			return errMsg{err}
		}
		return summaryMsg(summary)
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.pollSummary(), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.pollSummary()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.pollSummary(), tickCmd())

	case summaryMsg:
		m.summary = report.Summary(msg)
		m.lastPoll = time.Now()
		m.err = nil

	case errMsg:
		m.err = msg.err
		m.lastPoll = time.Now()
	}
	return m, nil
}

// ── View ─────────────────────────────────────────────────────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51")).
			Background(lipgloss.Color("17")).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	critStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("faultwatch — sensor fault summary"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render("cannot reach server: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	s := m.summary
	if s.TotalReadings == 0 && m.err == nil {
		b.WriteString(dimStyle.Render("no readings stored yet"))
		b.WriteString("\n")
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %8s %8s %10s %10s %8s", "SENSOR", "TOTAL", "FAULTS", "CRITICAL", "WARNING", "OK")))
		b.WriteString("\n")
		for _, sensor := range s.Sensors {
			crit := sensor.SeverityCounts[models.SeverityCritical]
			warn := sensor.SeverityCounts[models.SeverityWarning]
			ok := sensor.SeverityCounts[models.SeverityNone]
			line := fmt.Sprintf("%-12s %8d %8d %10s %10s %8s",
				sensor.Sensor, sensor.Total, sensor.FaultReadings,
				critStyle.Render(fmt.Sprintf("%d", crit)),
				warnStyle.Render(fmt.Sprintf("%d", warn)),
				okStyle.Render(fmt.Sprintf("%d", ok)))
			b.WriteString(line)
			b.WriteString("\n")
		}

		b.WriteString("\n")
		b.WriteString(severityBar(s.SeverityBreakdown, s.TotalReadings, m.width))
		b.WriteString("\n")

		if s.MostFaultySensor != "" {
			b.WriteString("\n")
			b.WriteString(critStyle.Render(fmt.Sprintf("most faulty: %s (%d fault readings)", s.MostFaultySensor, s.MostFaultyCount)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	footer := "q quit · r refresh"
	if !m.lastPoll.IsZero() {
		footer += " · updated " + m.lastPoll.Format("15:04:05")
	}
	b.WriteString(dimStyle.Render(footer))
	return b.String()
}

// severityBar renders the overall severity mix as a proportional bar.
func severityBar(breakdown map[models.Severity]int, total, width int) string {
	if total == 0 {
		return ""
	}
	barWidth := width - 4
	if barWidth < 20 {
		barWidth = 40
	}

	segments := []struct {
		severity models.Severity
		style    lipgloss.Style
	}{
		{models.SeverityCritical, critStyle},
		{models.SeverityWarning, warnStyle},
		{models.SeverityNone, okStyle},
	}

	var b strings.Builder
	for _, seg := range segments {
		n := breakdown[seg.severity] * barWidth / total
		if breakdown[seg.severity] > 0 && n == 0 {
			n = 1
		}
		b.WriteString(seg.style.Render(strings.Repeat("█", n)))
	}

	legend := make([]string, 0, len(segments))
	for _, seg := range segments {
		legend = append(legend, seg.style.Render(fmt.Sprintf("%s %d", seg.severity, breakdown[seg.severity])))
	}

	return b.String() + "\n" + strings.Join(legend, dimStyle.Render(" · "))
}
