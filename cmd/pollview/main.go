// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/Robinson7070/alx-polly/cliparse"
	"github.com/Robinson7070/alx-polly/client"
	"github.com/Robinson7070/alx-polly/pollview"
	"github.com/Robinson7070/alx-polly/tui"
)

const usage = `usage: pollview [flags] <command>

commands:
  register <name>                   create an account and print its token
  create <question> <option>...     create a poll (needs a token)
  list                              list polls
  <poll-id>                         open a poll

flags:
  -server   API server URL (POLLY_SERVER_URL)
  -token    bearer token (POLLY_TOKEN)
  -timeout  per-request timeout (POLLY_TIMEOUT)
  -log      log file (POLLY_LOG_FILE)
`

func main() {
	cfg, err := cliparse.ParseClientFlags(os.Args[1:])
	if err != nil || len(cfg.Args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	closeLog, err := setupLogging(cfg.LogFile, cfg.Args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	api := client.New(cfg.ServerURL, cfg.Token, cfg.Timeout)
	ctx := context.Background()

	switch cfg.Args[0] {
	case "register":
		err = register(ctx, api, cfg.Args[1:])
	case "create":
		err = create(ctx, api, cfg.Args[1:])
	case "list":
		err = list(ctx, api)
	default:
		err = view(api, cfg.Args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends slog output to path. Without a path the poll viewer
// discards logs, since bubbletea owns the terminal; other commands log to
// stderr.
func setupLogging(path, command string) (func(), error) {
	var w io.Writer = os.Stderr
	closer := func() {}

	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
		closer = func() { f.Close() }
	case command != "register" && command != "create" && command != "list":
		w = io.Discard
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return closer, nil
}

func register(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: pollview register <name>")
	}
	resp, err := api.Register(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s (%s)\n", resp.Name, resp.UserID)
	fmt.Printf("export POLLY_TOKEN=%s\n", resp.Token)
	return nil
}

func create(ctx context.Context, api *client.Client, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: pollview create <question> <option> <option>...")
	}
	if !api.SignedIn() {
		return errors.New("a token is required to create polls; run register first")
	}
	poll, err := api.CreatePoll(ctx, args[0], args[1:])
	if err != nil {
		return err
	}
	fmt.Printf("Created poll %s\n%s\n", poll.ID, api.ShareURL(poll.ID))
	return nil
}

func list(ctx context.Context, api *client.Client) error {
	polls, err := api.ListPolls(ctx)
	if err != nil {
		return err
	}
	if len(polls) == 0 {
		fmt.Println("No polls yet.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tQUESTION\tVOTES\tCREATED")
	for _, p := range polls {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Question, humanize.Comma(int64(p.TotalVotes)), humanize.Time(p.CreatedAt))
	}
	return tw.Flush()
}

func view(api *client.Client, pollID string) error {
	toasts := tui.NewToasts()
	session := pollview.NewSession(pollview.Env{
		Polls:   api,
		Viewers: api,
		Votes:   api,
		Notify:  toasts,
	})

	model := tui.NewModel(session, tui.Options{
		PollID:   pollID,
		ShareURL: api.ShareURL(pollID),
		Deleter:  api,
		Toasts:   toasts,
	})

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Deleted() {
		fmt.Println("Poll deleted.")
	}
	return nil
}
