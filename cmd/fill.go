package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/jumpypanter/serverforms/internal/adapters/render/chat"
	"github.com/jumpypanter/serverforms/internal/domain"
	"github.com/spf13/cobra"
)

// transcriptNotifier buffers engine messages so the interview model can
// append them to its transcript between keystrokes.
type transcriptNotifier struct {
	lines []string
}

func (n *transcriptNotifier) Success(message string) {
	n.lines = append(n.lines, message)
}

func (n *transcriptNotifier) Failure(message string) {
	if !strings.HasPrefix(message, "&") {
		message = "&c" + message
	}
	n.lines = append(n.lines, message)
}

func (n *transcriptNotifier) drain() []string {
	lines := n.lines
	n.lines = nil
	return lines
}

func newFillCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:               "fill <form>",
		Short:             "Fill out a form interactively",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: suggestFormKeys(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := actingPlayer(cmd)
			if err != nil {
				return err
			}

			form, ok := app.catalog.Form(args[0])
			if !ok {
				form, ok = app.catalog.FormByCommand(args[0])
			}
			if !ok {
				return domain.ErrFormNotFound
			}

			playerID, err := app.resolver.Resolve(cmd.Context(), player)
			if err != nil {
				return fmt.Errorf("resolve player identity: %w", err)
			}

			notify := &transcriptNotifier{}
			if err := app.engine.Start(cmd.Context(), playerID, player, form, notify); err != nil {
				for _, line := range notify.drain() {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), chat.Format(line))
				}
				return err
			}

			model := newFillModel(app, playerID, notify)
			program := tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))

			final, err := program.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(fillModel); ok && m.err != nil {
				return m.err
			}
			return nil
		},
	}
}

type fillModel struct {
	app        *app
	playerID   uuid.UUID
	notify     *transcriptNotifier
	input      textinput.Model
	transcript []string
	done       bool
	err        error
}

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

func newFillModel(app *app, playerID uuid.UUID, notify *transcriptNotifier) fillModel {
	input := textinput.New()
	input.Placeholder = "type your answer and press enter"
	input.Focus()

	return fillModel{
		app:        app,
		playerID:   playerID,
		notify:     notify,
		input:      input,
		transcript: notify.drain(),
	}
}

func (m fillModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m fillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			// Abandoning mid-form leaves the session registered; the
			// registry dies with the process, so release it here.
			m.app.engine.Registry().End(m.playerID)
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m fillModel) submit() (tea.Model, tea.Cmd) {
	answer := m.input.Value()
	m.input.SetValue("")
	m.transcript = append(m.transcript, promptStyle.Render("> "+answer))

	err := m.app.engine.SubmitAnswer(context.Background(), m.playerID, answer, m.notify)
	m.transcript = append(m.transcript, m.notify.drain()...)

	if err != nil {
		m.err = err
		m.done = true
		return m, tea.Quit
	}
	if _, active := m.app.engine.Registry().Active(m.playerID); !active {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m fillModel) View() string {
	var b strings.Builder
	for _, line := range m.transcript {
		b.WriteString(chat.Format(line))
		b.WriteByte('\n')
	}
	if !m.done {
		b.WriteString(m.input.View())
		b.WriteByte('\n')
	}
	return b.String()
}
