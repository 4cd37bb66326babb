package vselect

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/urfave/cli/v2"

	"go.minekube.com/vselect/internal/util/console"
	"go.minekube.com/vselect/pkg/config"
	"go.minekube.com/vselect/pkg/feature"
	"go.minekube.com/vselect/pkg/internal/reload"
	"go.minekube.com/vselect/pkg/util/errs"
	"go.minekube.com/vselect/pkg/vselect"
)

func interactiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "interactive",
		Usage: "Edit the version field line by line",
		Description: `Every input line replaces the field text. Lines starting with a colon are commands:

	:enable   enable client-side mode after confirmation
	:status   print the field state
	:quit     exit

The config file is watched and reloaded on change.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Reload the config file on change",
				Value: true,
			},
		},
		Action: func(c *cli.Context) error {
			s := selector(c)
			log := logr.FromContextOrDiscard(c.Context)

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()
			if path := c.String("config"); c.Bool("watch") && path != "" && s.Config() != nil {
				err := reload.Watch(ctx, path, func() error {
					return reloadSelector(log, s, path)
				})
				if err != nil {
					log.Info("not watching config file", "path", path, "error", err.Error())
				}
			}
			return runInteractive(ctx, s, c.App.Reader, c.App.Writer)
		},
	}
}

func reloadSelector(log logr.Logger, s *vselect.Selector, path string) error {
	cfg, err := config.LoadConfig(newViper(path))
	if err != nil {
		return err
	}
	if err = validate(log, cfg); err != nil {
		return err
	}
	return s.Reload(cfg)
}

func runInteractive(ctx context.Context, s *vselect.Selector, r io.Reader, w io.Writer) error {
	in := bufio.NewScanner(r)
	// The confirmation reads from the same scanner.
	confirmer := &terminalConfirmer{in: in, out: w}

	printField := func() {
		f := s.Field()
		if !f.Visible() {
			_, _ = fmt.Fprintln(w, "client-side mode is disabled, type :enable")
			return
		}
		_, _ = fmt.Fprintln(w, console.Field(f.Text(), f.Result()))
	}
	printField()

	for ctx.Err() == nil && in.Scan() {
		line := strings.TrimSpace(in.Text())
		switch line {
		case ":quit", ":q":
			return nil
		case ":status":
			printField()
			continue
		case ":enable":
			_, err := s.Field().Enable(ctx, confirmer)
			if err != nil {
				if !errs.IsNonFatal(err) {
					return err
				}
				_, _ = fmt.Fprintf(w, "could not enable client-side mode: %v\n", err)
			}
			printField()
			continue
		}
		if !s.Field().Visible() {
			printField()
			continue
		}
		s.Field().SetText(line)
		printField()
	}
	return in.Err()
}

// terminalConfirmer asks for confirmation on a terminal.
type terminalConfirmer struct {
	in  *bufio.Scanner
	out io.Writer
	yes bool
}

func newTerminalConfirmer(r io.Reader, w io.Writer, yes bool) *terminalConfirmer {
	return &terminalConfirmer{in: bufio.NewScanner(r), out: w, yes: yes}
}

var _ feature.Confirmer = (*terminalConfirmer)(nil)

func (t *terminalConfirmer) Confirm(ctx context.Context, p feature.Prompt) (bool, error) {
	if t.yes {
		return true, nil
	}
	_, _ = fmt.Fprintf(t.out, "%s\n%s\n[%s/%s]: ", p.Question, p.Warning, p.Accept, p.Cancel)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return false, err
		}
		return false, nil
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	answer := strings.TrimSpace(t.in.Text())
	return strings.EqualFold(answer, "y") ||
		strings.EqualFold(answer, "yes") ||
		strings.EqualFold(answer, p.Accept), nil
}
