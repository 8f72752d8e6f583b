package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/draftkit/internal/logging"
	"github.com/aretw0/draftkit/internal/presentation/tui"
	"github.com/aretw0/draftkit/pkg/ports"
	"github.com/aretw0/draftkit/pkg/surface"
)

const sessionHelp = `Lines are typed one character at a time; markers trigger as you type.
  :paste <text>    paste text at once (\n for newlines)
  :key <command>   bold, italic, underline, code, strikethrough, backspace, tab, shift-tab
  :save            save explicitly
  :show [format]   terminal, markdown, glamour, html or json
  :help            this message
  :quit            leave the editor
  ::text           type text starting with ':'`

// SessionOptions configures RunSession.
type SessionOptions struct {
	Surface *surface.Surface
	Doc     ports.DocumentEngine
	In      io.Reader
	Out     io.Writer

	// Interactive prints the banner and a prompt.
	Interactive bool
	Render      RenderOptions
	Logger      *slog.Logger
}

// RunSession runs the line editor until EOF, :quit or ctx is done.
func RunSession(ctx context.Context, opts SessionOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.Interactive {
		tui.PrintBanner(opts.Out)
	}

	scanner := bufio.NewScanner(opts.In)
	first := opts.Surface.State().Content().PlainText() == ""
	for {
		if opts.Interactive {
			fmt.Fprint(opts.Out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := scanner.Text()
		quit, err := runLine(ctx, opts, line, &first)
		if err != nil {
			logger.Warn("command failed", "line", line, "error", err)
			printSystemMessage(opts.Out, "error: %v", err)
		}
		if quit {
			return nil
		}
	}
}

func runLine(ctx context.Context, opts SessionOptions, line string, first *bool) (bool, error) {
	s := opts.Surface
	if !strings.HasPrefix(line, ":") || strings.HasPrefix(line, "::") {
		if strings.HasPrefix(line, "::") {
			line = line[1:]
		}
		text := line
		if !*first {
			text = "\n" + line
		}
		*first = false
		_, err := s.Type(ctx, text)
		return false, err
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	switch name {
	case "q", "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(opts.Out, sessionHelp)
	case "paste":
		res, _, err := s.Paste(ctx, strings.ReplaceAll(arg, `\n`, "\n"), "")
		if err != nil {
			return false, err
		}
		*first = false
		printSystemMessage(opts.Out, "paste %s", res)
	case "key":
		res, _ := s.KeyCommand(ctx, strings.TrimSpace(arg))
		printSystemMessage(opts.Out, "%s %s", strings.TrimSpace(arg), res)
	case "save":
		if err := s.Save(ctx); err != nil {
			return false, err
		}
		printSystemMessage(opts.Out, "saved")
	case "show":
		return false, Render(opts.Out, strings.TrimSpace(arg), opts.Doc, s.State().Content(), opts.Render)
	default:
		return false, fmt.Errorf("unknown command %q, try :help", name)
	}
	return false, nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
