package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	err   error
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) Add(ctx context.Context) error { return f.record("add") }
func (f *fakeExec) List(ctx context.Context, filter string) error { return f.record("list " + filter) }
func (f *fakeExec) Archive(ctx context.Context) error { return f.record("archive") }
func (f *fakeExec) Show(ctx context.Context, id string) error { return f.record("show " + id) }
func (f *fakeExec) Edit(ctx context.Context, id string) error { return f.record("edit " + id) }
func (f *fakeExec) Return(ctx context.Context, id string) error { return f.record("return " + id) }
func (f *fakeExec) Delete(ctx context.Context, id string) error { return f.record("delete " + id) }
func (f *fakeExec) Feed(ctx context.Context) error { return f.record("feed") }
func (f *fakeExec) Dismiss(ctx context.Context, id string) error { return f.record("dismiss " + id) }
func (f *fakeExec) Stats(ctx context.Context, period string) error {
	return f.record("stats " + period)
}

func noPrompt() string { return "" }

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"add",
		"",
		"list active",
		"l",
		"archive",
		"show 1a2b",
		"edit 1a2b",
		"return 1a2b",
		"rm 1a2b",
		"feed",
		"dismiss 1a2b",
		"stats year",
		"foobar",
		"exit",
		"add",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, noPrompt, bufio.NewReader(strings.NewReader(input)), &out)

	assert.Equal(t, []string{
		"add", "list active", "list ", "archive", "show 1a2b", "edit 1a2b",
		"return 1a2b", "delete 1a2b", "feed", "dismiss 1a2b", "stats year",
	}, exec.calls, "nothing after exit is executed")

	assert.Contains(t, out.String(), "Available commands:")
	assert.Contains(t, out.String(), "Unknown command: foobar")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	exec := &fakeExec{err: errors.New("purchase \"zz\": not found")}
	var out bytes.Buffer

	runREPL(context.Background(), exec, noPrompt, bufio.NewReader(strings.NewReader("show zz\nfeed\nquit\n")), &out)

	assert.Equal(t, []string{"show zz", "feed"}, exec.calls)
	assert.Equal(t, 2, strings.Count(out.String(), "Error: purchase \"zz\": not found"))
}

func TestRunREPL_StopsOnEOFAndCancel(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, noPrompt, bufio.NewReader(strings.NewReader("feed")), &out)
	assert.Equal(t, []string{"feed"}, exec.calls, "last line without newline still runs")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{}
	runREPL(ctx, exec, noPrompt, bufio.NewReader(strings.NewReader("feed\n")), &out)
	assert.Empty(t, exec.calls)
}

func TestRunREPL_Prompt(t *testing.T) {
	var out bytes.Buffer
	runREPL(context.Background(), &fakeExec{}, func() string { return "wk> " }, bufio.NewReader(strings.NewReader("quit\n")), &out)
	assert.True(t, strings.HasPrefix(out.String(), "wk> "))
}
