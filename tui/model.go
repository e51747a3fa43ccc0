// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/Robinson7070/alx-polly/models"
	"github.com/Robinson7070/alx-polly/pollview"
)

// PollDeleter removes a poll on behalf of its owner.
type PollDeleter interface {
	DeletePoll(ctx context.Context, pollID string) error
}

type Options struct {
	PollID   string
	ShareURL string
	// Deleter enables the owner's delete action when set.
	Deleter PollDeleter
	// Toasts must be the Notifier the session was built with.
	Toasts Toasts
	Now    func() time.Time
}

type loadedMsg struct{ err error }
type voteMsg struct{ err error }
type deletedMsg struct{ err error }

// Model is the bubbletea model of one poll page. The bubbletea event loop is
// the only goroutine calling Update, so session actions happen in order;
// network calls run as commands and report back as messages.
type Model struct {
	session *pollview.Session
	opts    Options

	toast         *Toast
	confirmDelete bool
	deleted       bool
	width         int
}

func NewModel(session *pollview.Session, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return Model{session: session, opts: opts}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), waitForToast(m.opts.Toasts))
}

// Deleted reports whether the poll was deleted from this model.
func (m Model) Deleted() bool {
	return m.deleted
}

func (m Model) load() tea.Cmd {
	session, pollID := m.session, m.opts.PollID
	return func() tea.Msg {
		return loadedMsg{err: session.Load(context.Background(), pollID)}
	}
}

func (m Model) sendVote(optionIndex int) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return voteMsg{err: session.ResolveSubmit(session.SendVote(context.Background(), optionIndex))}
	}
}

func (m Model) deletePoll() tea.Cmd {
	deleter, pollID := m.opts.Deleter, m.opts.PollID
	return func() tea.Msg {
		return deletedMsg{err: deleter.DeletePoll(context.Background(), pollID)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case loadedMsg:
		// status and error live in the session

	case voteMsg:
		if msg.err != nil {
			m.toast = &Toast{Kind: ToastError, Text: msg.err.Error()}
			return m, nil
		}
		if m.session.State().Phase == pollview.Voted {
			return m, m.load()
		}

	case deletedMsg:
		m.confirmDelete = false
		if msg.err != nil {
			m.toast = &Toast{Kind: ToastError, Text: msg.err.Error()}
			return m, nil
		}
		m.deleted = true
		return m, tea.Quit

	case toastMsg:
		t := Toast(msg)
		m.toast = &t
		return m, waitForToast(m.opts.Toasts)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return m, tea.Quit
	}

	status, _ := m.session.Status()
	switch status {
	case pollview.LoadFailed:
		if key == "r" {
			return m, m.load()
		}
		return m, nil
	case pollview.Loaded:
	default:
		return m, nil
	}

	if m.confirmDelete {
		switch key {
		case "y":
			return m, m.deletePoll()
		case "n", "esc":
			m.confirmDelete = false
		}
		return m, nil
	}

	state := m.session.State()
	switch key {
	case "up", "k":
		m.move(state, -1)
	case "down", "j":
		m.move(state, 1)
	case "enter", " ":
		idx, err := m.session.BeginSubmit()
		if err != nil {
			// no selection, in flight, or already voted: nothing to send
			return m, nil
		}
		m.toast = nil
		return m, m.sendVote(idx)
	case "r":
		return m, m.load()
	case "d":
		if m.session.IsOwner() && m.opts.Deleter != nil {
			m.confirmDelete = true
		}
	default:
		if n := digit(key); n > 0 {
			m.session.Select(n - 1)
		}
	}
	return m, nil
}

// move shifts the selection, starting from the top when nothing is selected.
func (m Model) move(state pollview.State, delta int) {
	poll, ok := m.session.Poll()
	if !ok {
		return
	}
	next := 0
	if state.HasSelection() {
		next = (state.Selection + delta + len(poll.Options)) % len(poll.Options)
	}
	// rejected while submitting or after voting
	m.session.Select(next)
}

func digit(key string) int {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '0')
	}
	return 0
}

func (m Model) View() string {
	status, loadErr := m.session.Status()
	switch status {
	case pollview.Unloaded, pollview.Loading:
		if _, ok := m.session.Poll(); !ok {
			return "Loading...\n"
		}
	case pollview.LoadFailed:
		return m.viewLoadFailed(loadErr)
	}

	poll, _ := m.session.Poll()
	state := m.session.State()

	var b strings.Builder
	b.WriteString(questionStyle.Render(poll.Question))
	b.WriteString("\n")

	if state.Phase == pollview.Voted {
		b.WriteString(m.viewResults(poll))
	} else {
		b.WriteString(m.viewOptions(poll, state))
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Created %s", humanize.RelTime(poll.CreatedAt, m.opts.Now(), "ago", "from now"))))

	out := cardStyle.Render(b.String()) + "\n"

	if m.session.IsOwner() {
		out += m.viewOwner() + "\n"
	}
	if m.opts.ShareURL != "" {
		out += mutedStyle.Render("Share: "+m.opts.ShareURL) + "\n"
	}
	if m.toast != nil {
		out += m.viewToast() + "\n"
	}
	out += mutedStyle.Render(m.help(state)) + "\n"
	return out
}

func (m Model) viewLoadFailed(err error) string {
	var reason string
	switch {
	case errors.Is(err, models.ErrPollNotFound):
		reason = "Poll not found."
	case errors.Is(err, models.ErrMalformedSnapshot):
		reason = "The server sent a poll that could not be read."
	default:
		reason = fmt.Sprintf("Could not load poll: %v", err)
	}
	return errorStyle.Render(reason) + "\n" + mutedStyle.Render("r retry • q quit") + "\n"
}

func (m Model) viewOptions(poll models.Poll, state pollview.State) string {
	var b strings.Builder
	for i, opt := range poll.Options {
		if state.Selection == i {
			b.WriteString(selectedStyle.Render(fmt.Sprintf("(•) %s", opt)))
		} else {
			b.WriteString(optionStyle.Render(fmt.Sprintf("( ) %s", opt)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case state.Phase == pollview.Submitting:
		b.WriteString(disabledStyle.Render("[ Submitting... ]"))
	case !state.HasSelection():
		b.WriteString(disabledStyle.Render("[ Submit Vote ]"))
	default:
		b.WriteString(buttonStyle.Render("[ Submit Vote ]"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewResults(poll models.Poll) string {
	var b strings.Builder
	b.WriteString("Results:\n")

	width := 0
	for _, opt := range poll.Options {
		width = max(width, len([]rune(opt)))
	}

	for _, r := range m.session.Results() {
		votes := "votes"
		if r.Votes == 1 {
			votes = "vote"
		}
		fmt.Fprintf(&b, "%-*s %s %3d%% (%s %s)\n",
			width, r.Label, bar(r.Percent), r.Percent, humanize.Comma(int64(r.Votes)), votes)
	}
	fmt.Fprintf(&b, "\nTotal votes: %s\n", humanize.Comma(int64(poll.TotalVotes)))
	return b.String()
}

func (m Model) viewOwner() string {
	if m.confirmDelete {
		return errorStyle.Render("Delete this poll? y confirm • n cancel")
	}
	hint := "You own this poll • edit it on the web"
	if m.opts.Deleter != nil {
		hint += " • d delete"
	}
	return ownerStyle.Render(hint)
}

func (m Model) viewToast() string {
	if m.toast.Kind == ToastError {
		return errorStyle.Render("✗ " + m.toast.Text)
	}
	return successStyle.Render("✓ " + m.toast.Text)
}

func (m Model) help(state pollview.State) string {
	if state.Phase == pollview.Voted {
		return "r refresh • q quit"
	}
	return "↑/↓ select • enter vote • r refresh • q quit"
}
