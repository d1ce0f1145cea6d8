package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
)

const (
	uploadFieldPath = iota
	uploadFieldSubmit
)

type uploadState struct {
	input  textinput.Model
	focus  int
	errMsg string
	info   string

	// Preview of the file behind the current path, refreshed on input
	previewName string
	previewSize int64
	previewMIME string
}

func newUploadState() uploadState {
	input := textinput.New()
	input.Placeholder = "/path/to/photo.jpg"
	input.CharLimit = 512
	input.Focus()
	return uploadState{input: input}
}

func (s uploadState) typing() bool {
	return s.focus < uploadFieldSubmit
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.gotoHome()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.upload.focus = (m.upload.focus + 1) % (uploadFieldSubmit + 1)
		m.syncUploadFocus()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.upload.focus--
		if m.upload.focus < 0 {
			m.upload.focus = uploadFieldSubmit
		}
		m.syncUploadFocus()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.submitUpload()
	}

	if m.upload.typing() {
		var cmd tea.Cmd
		m.upload.input, cmd = m.upload.input.Update(msg)
		m.refreshUploadPreview()
		return m, cmd
	}
	return m, nil
}

func (m *Model) syncUploadFocus() {
	if m.upload.focus == uploadFieldPath {
		m.upload.input.Focus()
	} else {
		m.upload.input.Blur()
	}
}

// refreshUploadPreview stats the typed path so the user sees what will be
// uploaded before committing.
func (m *Model) refreshUploadPreview() {
	m.upload.previewName = ""
	m.upload.previewSize = 0
	m.upload.previewMIME = ""

	path := strings.TrimSpace(m.upload.input.Value())
	if path == "" {
		return
	}
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return
	}
	m.upload.previewName = filepath.Base(path)
	m.upload.previewSize = fi.Size()
	m.upload.previewMIME = advisor.ImageMIMEType(path)
}

func (m Model) submitUpload() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.upload.input.Value())

	if path == "" {
		m.upload.errMsg = "Enter the path to a photo of the item."
		return m, nil
	}
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		m.upload.errMsg = "That file doesn't exist."
		return m, nil
	}

	m.upload.errMsg = ""
	m.upload.info = ""
	m.startPending("Uploading your item...")
	return m, uploadCmd(m.ctx, m.client, path)
}

func uploadCmd(ctx context.Context, client *advisor.Client, path string) tea.Cmd {
	return func() tea.Msg {
		message, err := client.AddClothingItem(ctx, path)
		return uploadResultMsg{message: message, err: err}
	}
}

func (m Model) handleUploadResult(msg uploadResultMsg) (tea.Model, tea.Cmd) {
	m.stopPending()

	if msg.err != nil {
		if m.sessionLost(msg.err) {
			return m, nil
		}
		m.upload.errMsg = errorText(msg.err)
		return m, nil
	}

	// Clear the form so the next item starts fresh
	m.upload = newUploadState()
	m.upload.info = msg.message
	if m.upload.info == "" {
		m.upload.info = "Added to your wardrobe."
	}
	return m, refreshWardrobeCmd(m.ctx, m.client)
}

func (m Model) renderUpload() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Add a clothing item"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Photo path"))
	b.WriteString("\n")
	b.WriteString(m.upload.input.View())
	b.WriteString("\n\n")
	b.WriteString(renderAction(styles, "Upload", m.upload.focus == uploadFieldSubmit))
	b.WriteString("\n")

	if m.upload.previewName != "" {
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render(fmt.Sprintf(
			"%s · %s · %s",
			m.upload.previewName,
			humanizeBytes(m.upload.previewSize),
			m.upload.previewMIME,
		)))
		b.WriteString("\n")
	}

	if m.upload.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(m.upload.errMsg))
		b.WriteString("\n")
	}
	if m.upload.info != "" {
		b.WriteString("\n")
		b.WriteString(styles.SuccessText.Render(m.upload.info))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter upload | esc home"))

	box := styles.Box
	if m.upload.typing() {
		box = styles.FocusBox
	}
	return box.Render(b.String())
}

func humanizeBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
