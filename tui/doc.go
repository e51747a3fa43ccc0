// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tui renders a pollview.Session as a bubbletea program.

	toasts := tui.NewToasts()
	session := pollview.NewSession(pollview.Env{..., Notify: toasts})
	model := tui.NewModel(session, tui.Options{PollID: id, Toasts: toasts})
	tea.NewProgram(model).Run()

The page moves through the session's states:

  - Loading until the first snapshot arrives
  - a load error with r to retry
  - the option list, with "Submitting..." while a vote is in flight
  - results with percentage bars once the vote is accepted

Network calls run as tea.Cmd and report back as messages, so the session is
only advanced from Update. After an accepted vote the model reloads the poll
to show the server's counts.
*/
package tui
