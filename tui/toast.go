// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import tea "github.com/charmbracelet/bubbletea"

type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

type Toast struct {
	Kind ToastKind
	Text string
}

// Toasts is a pollview.Notifier that hands messages to the running program.
// Sends never block; when the buffer is full the message is dropped.
type Toasts chan Toast

func NewToasts() Toasts {
	return make(Toasts, 8)
}

func (t Toasts) Success(msg string) { t.send(Toast{Kind: ToastSuccess, Text: msg}) }
func (t Toasts) Error(msg string)   { t.send(Toast{Kind: ToastError, Text: msg}) }

func (t Toasts) send(toast Toast) {
	select {
	case t <- toast:
	default:
	}
}

type toastMsg Toast

// waitForToast delivers the next toast as a message. Update re-arms it after
// each delivery.
func waitForToast(t Toasts) tea.Cmd {
	if t == nil {
		return nil
	}
	return func() tea.Msg {
		return toastMsg(<-t)
	}
}
