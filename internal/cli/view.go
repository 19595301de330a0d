package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/roach88/touchstate/internal/harness"
	"github.com/roach88/touchstate/internal/store"
	"github.com/roach88/touchstate/internal/touch"
)

var (
	colorText    = lipgloss.Color("#cdd6f4")
	colorSubtext = lipgloss.Color("#a6adc8")
	colorGreen   = lipgloss.Color("#a6e3a1")
	colorPeach   = lipgloss.Color("#fab387")
	colorRed     = lipgloss.Color("#f38ba8")
	colorBlue    = lipgloss.Color("#89b4fa")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	labelStyle   = lipgloss.NewStyle().Foreground(colorSubtext)
	valueStyle   = lipgloss.NewStyle().Foreground(colorText)
	pressStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	releaseStyle = lipgloss.NewStyle().Foreground(colorPeach)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

type viewKeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding
	Quit  key.Binding
}

func newViewKeyMap() viewKeyMap {
	return viewKeyMap{
		Next:  key.NewBinding(key.WithKeys("n", "l", "right"), key.WithHelp("n/→", "next")),
		Prev:  key.NewBinding(key.WithKeys("p", "h", "left"), key.WithHelp("p/←", "prev")),
		First: key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Last:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k viewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.First, k.Last, k.Quit}
}

func (k viewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ViewOptions holds flags for the view command.
type ViewOptions struct {
	*RootOptions
	Database string
	Session  string
}

// NewViewCommand creates the view command.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ViewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Step through a session frame by frame",
		Long: `Open an interactive frame stepper for a recorded session.

Keys: n/l/right next frame, p/h/left previous, g/home first, G/end last,
q/esc quit. With --format json the per-frame trace is printed instead.

Examples:
  touchstate view --session swipe
  touchstate view --session swipe --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session id or name (required)")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func runView(ctx context.Context, opts *ViewOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ropts, err := opts.Config.Reducer.Options()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid reducer options", err)
	}

	st, err := openStore(opts.RootOptions, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := resolveSession(ctx, st, opts.Session)
	if err != nil {
		return err
	}
	stamped, err := st.ReadFrames(ctx, sess.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}

	frames := harness.Inputs(stamped)
	traces := harness.Play(frames, slog.Default(), ropts...)

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if f.JSON() {
		return f.Success(map[string]any{"session": sess, "trace": traces})
	}

	p := tea.NewProgram(newViewModel(sess, frames, traces),
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return WrapExitError(ExitCommandError, "viewer failed", err)
	}
	return nil
}

// viewModel is the bubbletea model of the frame stepper.
type viewModel struct {
	session store.Session
	frames  [][]touch.TouchInput
	traces  []harness.FrameTrace
	cursor  int
	done    bool
	keys    viewKeyMap
	help    help.Model
}

func newViewModel(sess store.Session, frames [][]touch.TouchInput, traces []harness.FrameTrace) viewModel {
	return viewModel{
		session: sess,
		frames:  frames,
		traces:  traces,
		keys:    newViewKeyMap(),
		help:    help.New(),
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		last := len(m.traces) - 1
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			if m.cursor < last {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Prev):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.First):
			m.cursor = 0
		case key.Matches(msg, m.keys.Last):
			if last >= 0 {
				m.cursor = last
			}
		}
	}
	return m, nil
}

func (m viewModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", m.session.Name, m.session.ID)))
	b.WriteString("\n")

	if len(m.traces) == 0 {
		b.WriteString(labelStyle.Render("session has no frames"))
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.Quit}))
		return b.String()
	}

	tr := m.traces[m.cursor]
	b.WriteString(labelStyle.Render(fmt.Sprintf("frame %d/%d", m.cursor+1, len(m.traces))))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("events"))
	b.WriteString("\n")
	if len(m.frames[m.cursor]) == 0 {
		b.WriteString(valueStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, ev := range m.frames[m.cursor] {
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %-9s id=%d (%g, %g)", ev.Phase, ev.ID, ev.X, ev.Y)))
		b.WriteString("\n")
	}
	if tr.Error != "" {
		b.WriteString(errorStyle.Render("  rejected: " + tr.Error))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("active (%d)", len(tr.Active))))
	b.WriteString("\n")
	for _, t := range tr.Active {
		b.WriteString(valueStyle.Render(fmt.Sprintf("  id=%d start=(%g, %g) cur=(%g, %g) d=(%g, %g)",
			t.ID, t.StartX, t.StartY, t.CurX, t.CurY, t.DX(), t.DY())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pressStyle.Render(fmt.Sprintf("pressed   %v", tr.JustPressed)))
	b.WriteString("\n")
	b.WriteString(releaseStyle.Render(fmt.Sprintf("released  %v", tr.JustReleased)))
	b.WriteString("\n")
	b.WriteString(releaseStyle.Render(fmt.Sprintf("cancelled %v", tr.JustCancelled)))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}
