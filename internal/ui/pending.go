package ui

import (
	"fmt"
	"time"
)

// slowRequestAfter is how long a request may run before the waiting notice
// changes tone. The request itself is never cancelled here; the HTTP client
// timeout owns that.
const slowRequestAfter = 45 * time.Second

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// pendingState tracks a single in-flight backend request. The UI blocks
// input while one is active so screens never race their own submissions.
type pendingState struct {
	active  bool
	label   string
	started time.Time
}

func (m *Model) startPending(label string) {
	m.pending = pendingState{active: true, label: label, started: time.Now()}
}

func (m *Model) stopPending() {
	m.pending = pendingState{}
}

// renderPending renders the in-flight request line below the content.
func (m Model) renderPending() string {
	styles := m.theme.Styles()

	elapsed := time.Since(m.pending.started)
	frame := spinnerFrames[int(elapsed/uiTick)%len(spinnerFrames)]

	label := m.pending.label
	if elapsed >= slowRequestAfter {
		return styles.WarningText.Render(
			fmt.Sprintf("%s %s This is taking longer than expected. Hang tight...", frame, label))
	}
	return styles.InfoText.Render(fmt.Sprintf("%s %s", frame, label))
}
