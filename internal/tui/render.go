// Package tui provides the interactive progress display shown while a
// composition renders.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	ColorAccent = lipgloss.Color("#00BCD4")
	ColorGray   = lipgloss.Color("#9A9EA0")
	ColorGreen  = lipgloss.Color("#4CAF50")
	ColorRed    = lipgloss.Color("#E95420")
	ColorWhite  = lipgloss.Color("#FFFFFF")
)

const progressBarWidth = 40

// Messages from the render goroutine
type percentMsg float64
type renderDoneMsg struct{ err error }

// RenderModel is the bubbletea model for an in-flight render
type RenderModel struct {
	sceneName  string
	outputFile string
	spinner    spinner.Model
	percent    float64
	startTime  time.Time
	done       bool
	canceling  bool
	err        error

	cancel   context.CancelFunc
	progress <-chan float64
	result   <-chan error
}

// NewRenderModel creates a model fed by the given progress and result channels
func NewRenderModel(sceneName, outputFile string, progress <-chan float64, result <-chan error) *RenderModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return &RenderModel{
		sceneName:  sceneName,
		outputFile: outputFile,
		spinner:    sp,
		startTime:  time.Now(),
		progress:   progress,
		result:     result,
	}
}

// Err returns the render error, if any, after the program finishes
func (m *RenderModel) Err() error {
	return m.err
}

func (m *RenderModel) waitForPercent() tea.Cmd {
	return func() tea.Msg {
		if p, ok := <-m.progress; ok {
			return percentMsg(p)
		}
		return nil
	}
}

func (m *RenderModel) waitForResult() tea.Cmd {
	return func() tea.Msg {
		return renderDoneMsg{err: <-m.result}
	}
}

// Init starts the spinner and channel listeners
func (m *RenderModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForPercent(), m.waitForResult())
}

// Update handles progress, completion, and key messages
func (m *RenderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case percentMsg:
		m.percent = float64(msg)
		return m, m.waitForPercent()

	case renderDoneMsg:
		m.done = true
		m.err = msg.err
		if m.err == nil {
			m.percent = 100
		}
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.done {
			// Cancel the encode and wait for the worker to wind down;
			// the renderDoneMsg quits the program.
			m.canceling = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress screen
func (m *RenderModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	grayStyle := lipgloss.NewStyle().Foreground(ColorGray)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Rendering composition"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s %s %s\n\n",
		m.statusIndicator(),
		m.sceneName,
		grayStyle.Render("→"),
		m.outputFile,
	))
	b.WriteString("  " + m.progressBar() + "\n\n")

	elapsed := time.Since(m.startTime).Round(time.Second)
	b.WriteString(grayStyle.Render(fmt.Sprintf("  Elapsed: %s", elapsed)))
	b.WriteString("\n")

	if m.done {
		if m.err != nil {
			b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render(fmt.Sprintf("\n  Error: %v\n", m.err)))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(ColorGreen).Render("\n  Render complete!\n"))
		}
	} else if m.canceling {
		b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render("\n  Canceling...\n"))
	} else {
		b.WriteString(grayStyle.Render("\n  Press ctrl+c to cancel\n"))
	}

	return b.String()
}

func (m *RenderModel) statusIndicator() string {
	if !m.done {
		return m.spinner.View()
	}
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(ColorRed).Render("✗")
	}
	return lipgloss.NewStyle().Foreground(ColorGreen).Render("●")
}

// progressBar renders a fixed-width bar with the current percentage
func (m *RenderModel) progressBar() string {
	filled := int(m.percent / 100 * progressBarWidth)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}

	bar := lipgloss.NewStyle().Foreground(ColorAccent).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(ColorGray).Render(strings.Repeat("░", progressBarWidth-filled))

	return fmt.Sprintf("%s %3.0f%%", bar, m.percent)
}

// RunRender displays render progress while work executes on its own
// goroutine. work receives a context that ctrl+c cancels and a progress
// callback safe to call from that goroutine; RunRender returns the error
// work returned.
func RunRender(sceneName, outputFile string, work func(ctx context.Context, onPercent func(float64)) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	progress := make(chan float64, 16)
	result := make(chan error, 1)

	go func() {
		err := work(ctx, func(p float64) {
			// Drop updates rather than block the encoder
			select {
			case progress <- p:
			default:
			}
		})
		close(progress)
		result <- err
	}()

	model := NewRenderModel(sceneName, outputFile, progress, result)
	model.cancel = cancel

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}
	return final.(*RenderModel).Err()
}
