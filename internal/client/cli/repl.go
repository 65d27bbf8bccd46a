package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Add(ctx context.Context) error
	List(ctx context.Context, filter string) error
	Archive(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Return(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Feed(ctx context.Context) error
	Dismiss(ctx context.Context, id string) error
	Stats(ctx context.Context, period string) error
}

const helpText = `Available commands:
  add                       add a purchase
  list [recent|active|refund]
                            list purchases (default: recent)
  archive                   list returned purchases
  show <id>                 show one purchase
  edit <id>                 edit a purchase
  return <id>               mark a purchase as returned
  delete <id>               delete a purchase
  feed                      purchases whose warranty expires soon
  dismiss <id>              hide a purchase from the feed
  stats [month|year]        statistics for the current month or year
  exit | quit               leave the program
An <id> can be shortened to any unique prefix.`

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, on "exit"/"quit", or once ctx is done. Command
// errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		if p := promptFn(); p != "" {
			fmt.Fprint(w, p)
		}

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var cmdErr error
		switch strings.ToLower(cmd) {
		case "help", "?":
			fmt.Fprintln(w, helpText)
		case "add":
			cmdErr = a.Add(ctx)
		case "l", "list":
			cmdErr = a.List(ctx, arg)
		case "archive":
			cmdErr = a.Archive(ctx)
		case "show":
			cmdErr = a.Show(ctx, arg)
		case "edit":
			cmdErr = a.Edit(ctx, arg)
		case "return":
			cmdErr = a.Return(ctx, arg)
		case "delete", "rm":
			cmdErr = a.Delete(ctx, arg)
		case "feed":
			cmdErr = a.Feed(ctx)
		case "dismiss":
			cmdErr = a.Dismiss(ctx, arg)
		case "stats":
			cmdErr = a.Stats(ctx, arg)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}
