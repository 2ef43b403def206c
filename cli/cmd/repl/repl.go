package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/tiles/log"
)

// Renderer renders a template to text.
type Renderer func(template string) (string, error)

// Hinter suggests names for a render error, or returns nil.
type Hinter func(err error) []string

// Saver writes the rendered output somewhere durable.
type Saver func(output string) error

// Styles.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("8"))
)

const helpLine = "tab complete • ctrl+s save • ctrl+p/ctrl+n history • esc quit"

const (
	defaultWidth  = 80
	defaultHeight = 10
)

// Option configures the REPL.
type Option func(config) config

type config struct {
	logger   log.Logger
	hint     Hinter
	save     Saver
	names    []string
	cacheDir string
}

// WithLogger traces REPL events through logger.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithHints shows the suggestions of hint below render errors.
func WithHints(hint Hinter) Option {
	return func(c config) config {
		c.hint = hint

		return c
	}
}

// WithSaver enables ctrl+s to write the rendered output with save.
func WithSaver(save Saver) Option {
	return func(c config) config {
		c.save = save

		return c
	}
}

// WithNames sets the names offered for completion inside markers.
func WithNames(names []string) Option {
	return func(c config) config {
		c.names = names

		return c
	}
}

// WithCacheDir persists saved templates in dir.
func WithCacheDir(dir string) Option {
	return func(c config) config {
		c.cacheDir = dir

		return c
	}
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc    func() context.Context
	cfg        config
	editor     textarea.Model
	render     Renderer
	history    *History
	historyIdx int
	names      []string
	matches    fuzzy.Matches
	word       string
	output     string
	err        error
	hints      []string
	status     string
	width      int
	quitting   bool
}

// Run starts an interactive editor over template that shows the rendered
// output of every edit.
func Run(
	ctx context.Context,
	template string,
	render Renderer,
	opts ...Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if render == nil {
		return ErrNoRenderer
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	var path string
	if cfg.cacheDir != "" {
		path = filepath.Join(cfg.cacheDir, baseHistory)
	}

	history := NewHistory(path)
	if err := history.Load(); err != nil {
		cfg.logger.WarnContext(ctx, "could not load history",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}

	cfg.logger.TraceContext(ctx, "repl start",
		slog.String("history", path),
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, cfg, template, render, history)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

func newModel(
	ctx context.Context,
	cfg config,
	template string,
	render Renderer,
	history *History,
) model {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetWidth(defaultWidth)
	ta.SetHeight(defaultHeight)
	ta.SetValue(template)
	ta.Focus()

	m := model{
		ctxFunc:    func() context.Context { return ctx },
		cfg:        cfg,
		editor:     ta,
		render:     render,
		history:    history,
		historyIdx: history.Len(),
		names:      candidates(cfg.names),
		width:      defaultWidth,
	}

	m.refresh()

	return m
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.editor.SetWidth(msg.Width)

		return m, nil
	}

	var cmd tea.Cmd

	m.editor, cmd = m.editor.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.cfg.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyCtrlS:
		m.status = m.save()

		return m, nil

	case tea.KeyCtrlP:
		return m.historyPrev(), nil

	case tea.KeyCtrlN:
		return m.historyNext(), nil

	case tea.KeyTab:
		if len(m.matches) > 0 {
			if suffix := completionSuffix(m.word, m.matches[0].Str); suffix != "" {
				m.editor.InsertString(suffix)
				m.refresh()

				return m, nil
			}
		}
	}

	var cmd tea.Cmd

	m.editor, cmd = m.editor.Update(msg)
	m.status = ""
	m.refresh()

	return m, cmd
}

// refresh re-renders the template and recomputes completions.
func (m *model) refresh() {
	m.output, m.err = m.render(m.editor.Value())
	m.hints = nil

	if m.err != nil && m.cfg.hint != nil {
		m.hints = m.cfg.hint(m.err)
	}

	m.word, m.matches = "", nil

	line := currentLine(m.editor)
	info := m.editor.LineInfo()
	cursor := byteOffset(line, info.StartColumn+info.ColumnOffset)

	if inMarker(line, cursor) {
		m.word, _, _ = wordBounds(line, cursor)
		m.matches = complete(m.word, m.names)
	}
}

// currentLine returns the logical line holding the cursor.
func currentLine(ta textarea.Model) string {
	lines := strings.Split(ta.Value(), "\n")
	if row := ta.Line(); row < len(lines) {
		return lines[row]
	}

	return ""
}

// save records the template in history and writes the output if a Saver
// is configured. It returns the status message to display.
func (m *model) save() string {
	if _, err := m.history.Write(m.editor.Value()); err != nil {
		return errorStyle.Render("history: " + err.Error())
	}

	m.historyIdx = m.history.Len()

	switch {
	case m.err != nil:
		return errorStyle.Render("not saved: template has errors")

	case m.cfg.save == nil:
		return errorStyle.Render(ErrNoOutput.Error())
	}

	if err := m.cfg.save(m.output + "\n"); err != nil {
		return errorStyle.Render("save: " + err.Error())
	}

	return resultStyle.Render("saved")
}

func (m model) historyPrev() model {
	if m.historyIdx == 0 {
		return m
	}

	m.historyIdx--

	return m.loadHistory()
}

func (m model) historyNext() model {
	if m.historyIdx >= m.history.Len()-1 {
		return m
	}

	m.historyIdx++

	return m.loadHistory()
}

func (m model) loadHistory() model {
	entry, err := m.history.GetLine(m.historyIdx)
	if err != nil {
		return m
	}

	m.editor.SetValue(entry)
	m.status = hintStyle.Render(
		fmt.Sprintf("history %d/%d", m.historyIdx+1, m.history.Len()),
	)
	m.refresh()

	return m
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("template"))
	b.WriteString("\n")
	b.WriteString(m.editor.View())
	b.WriteString("\n")

	if bar := renderCandidateBar(m.matches, m.width); bar != "" {
		b.WriteString(bar)
	}

	b.WriteString("\n")

	var preview string

	if m.err != nil {
		preview = errorStyle.Render(m.err.Error())

		if len(m.hints) > 0 {
			preview += "\n" + hintStyle.Render("did you mean: "+strings.Join(m.hints, ", "))
		}
	} else {
		preview = resultStyle.Render(m.output)
	}

	b.WriteString(previewStyle.Width(m.width).Render(preview))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("  ")
	}

	b.WriteString(hintStyle.Render(helpLine))
	b.WriteString("\n")

	return b.String()
}
