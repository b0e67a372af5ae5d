package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Timer is the slice of the timer service the screen drives.
type Timer interface {
	State() domain.TimerState
	Sections(ctx context.Context) (domain.Sections, error)
	Toggle(ctx context.Context) ([]domain.Event, error)
	Reset(ctx context.Context) ([]domain.Event, error)
	Tick(ctx context.Context) ([]domain.Event, error)
	RecordFocus(ctx context.Context, level domain.FocusLevel) (domain.Session, []domain.Event, error)
	TakeBreak(ctx context.Context) ([]domain.Event, error)
	ContinueWork(ctx context.Context) ([]domain.Event, error)
	AdjustTime(ctx context.Context, deltaMinutes int) error
	SwitchAppMode(ctx context.Context, mode domain.AppMode) ([]domain.Event, error)
	SelectSection(ctx context.Context, name string) error
	Persist(ctx context.Context) error
}

const adjustStepMinutes = 5

type tickMsg time.Time

type model struct {
	ctx      context.Context
	timer    Timer
	identity string
	keys     keyMap
	help     help.Model
	styles   styles

	state    domain.TimerState
	sections domain.Sections
	notice   string
	err      error
	reminder bool
	width    int
}

func newModel(ctx context.Context, timer Timer, identity string, theme domain.Theme) model {
	m := model{
		ctx:      ctx,
		timer:    timer,
		identity: identity,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   newStyles(theme),
		state:    timer.State(),
	}
	m.sections, m.err = timer.Sections(ctx)
	switch {
	case m.state.Status == domain.TimerAwaitingFocus:
		m.notice = focusPrompt
	case m.state.ReminderPending:
		m.reminder = true
		m.notice = reminderPrompt
	}
	return m
}

const (
	focusPrompt    = "Session complete. How focused were you? f / n / d"
	reminderPrompt = "2.5 hours without a long break. b: take one, c: keep going"
)

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		events, err := m.timer.Tick(m.ctx)
		m.apply(events, err)
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		events []domain.Event
		err    error
	)

	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.timer.Persist(m.ctx); err != nil {
			m.err = err
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		events, err = m.timer.Toggle(m.ctx)
	case key.Matches(msg, m.keys.Reset):
		events, err = m.timer.Reset(m.ctx)
	case key.Matches(msg, m.keys.Plus):
		err = m.timer.AdjustTime(m.ctx, adjustStepMinutes)
	case key.Matches(msg, m.keys.Minus):
		err = m.timer.AdjustTime(m.ctx, -adjustStepMinutes)
	case key.Matches(msg, m.keys.AppMode):
		next := domain.AppModeMockExam
		if m.state.AppMode == domain.AppModeMockExam {
			next = domain.AppModePomodoro
		}
		events, err = m.timer.SwitchAppMode(m.ctx, next)
	case key.Matches(msg, m.keys.Section):
		err = m.nextSection()
	case key.Matches(msg, m.keys.Focused):
		events, err = m.recordFocus(domain.FocusFocused)
	case key.Matches(msg, m.keys.Normal):
		events, err = m.recordFocus(domain.FocusNormal)
	case key.Matches(msg, m.keys.Distracted):
		events, err = m.recordFocus(domain.FocusDistracted)
	case key.Matches(msg, m.keys.TakeBreak) && m.reminder:
		events, err = m.timer.TakeBreak(m.ctx)
	case key.Matches(msg, m.keys.Continue) && m.reminder:
		events, err = m.timer.ContinueWork(m.ctx)
	default:
		return m, nil
	}

	m.notice = ""
	m.apply(events, err)
	return m, nil
}

func (m *model) recordFocus(level domain.FocusLevel) ([]domain.Event, error) {
	_, events, err := m.timer.RecordFocus(m.ctx, level)
	return events, err
}

// nextSection cycles the selection through the sections and back to none.
func (m *model) nextSection() error {
	sections, err := m.timer.Sections(m.ctx)
	if err != nil {
		return err
	}
	m.sections = sections
	if len(sections) == 0 {
		return errors.New("no sections yet: add one with `pomo section add`")
	}

	next := sections[0]
	if idx := sections.Index(m.state.Section); idx >= 0 {
		next = ""
		if idx+1 < len(sections) {
			next = sections[idx+1]
		}
	}
	return m.timer.SelectSection(m.ctx, next)
}

func (m *model) apply(events []domain.Event, err error) {
	m.state = m.timer.State()
	m.reminder = m.reminder && m.state.ReminderPending
	m.err = err
	if err != nil {
		return
	}

	for _, event := range events {
		switch e := event.(type) {
		case domain.SessionCompleted:
			if e.AwaitingFocus {
				m.notice = focusPrompt
			} else {
				m.notice = fmt.Sprintf("%s over. Back to work when you are ready.", e.Mode.Label())
			}
		case domain.BreakReminder:
			m.reminder = true
			m.notice = reminderPrompt
		case domain.SessionRecorded:
			m.notice = fmt.Sprintf("Saved %d min of %s (%s).", e.Session.Duration, e.Session.SectionOrDefault(), e.Session.Focus)
		}
	}
}

// Run shows the timer until the user quits. State is persisted on exit.
func Run(ctx context.Context, timer Timer, identity string, theme domain.Theme) error {
	p := tea.NewProgram(
		newModel(ctx, timer, identity, theme),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return timer.Persist(context.WithoutCancel(ctx))
		}
		return err
	}
	return nil
}
