package vselect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"go.minekube.com/vselect/internal/util/console"
	"go.minekube.com/vselect/pkg/proto"
	"go.minekube.com/vselect/pkg/registry"
	"go.minekube.com/vselect/pkg/resolve"
	"go.minekube.com/vselect/pkg/util/errs"
)

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve versions or protocol numbers",
		ArgsUsage: "TEXT...",
		Description: `Resolves each argument like the version field does and prints
the resolved protocol, its status and the suggested completion.

	vselect resolve 1.14.4 498 1.7.1`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "prior",
				Usage: "Protocol kept for invalid input (default: the selected protocol)",
				Value: int(proto.Unknown),
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("at least one TEXT argument is required", 1)
			}
			s := selector(c)
			prior := s.Session().Protocol()
			if c.IsSet("prior") {
				prior = proto.Protocol(c.Int("prior"))
			}
			res := resolve.New(s.Registry())
			for _, text := range c.Args().Slice() {
				printResult(c.App.Writer, s.Registry(), text, res.Resolve(text, prior))
			}
			return nil
		},
	}
}

func printResult(w io.Writer, reg registry.Registry, text string, res resolve.Result) {
	name := resolve.DisplayText(reg, res.Protocol)
	_, _ = fmt.Fprintf(w, "%s\t%s\tprotocol=%d (%s)\n",
		console.Field(text, res), console.Paint(res.Status(), res.Status().String()), res.Protocol, name)
}

func completeCommand() *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Usage:     "List version names and aliases starting with TEXT",
		ArgsUsage: "TEXT",
		Action: func(c *cli.Context) error {
			s := selector(c)
			res := resolve.New(s.Registry())
			for _, candidate := range res.Completions(c.Args().First()) {
				_, _ = fmt.Fprintln(c.App.Writer, candidate)
			}
			return nil
		},
	}
}

type versionEntry struct {
	Protocol  int      `json:"protocol" yaml:"protocol"`
	Name      string   `json:"name" yaml:"name"`
	Aliases   []string `json:"aliases" yaml:"aliases"`
	Native    bool     `json:"native" yaml:"native"`
	Supported bool     `json:"supported" yaml:"supported"`
}

func versionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "versions",
		Usage: "List known protocol versions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: text, yaml or json",
				Value:   "text",
			},
		},
		Action: func(c *cli.Context) error {
			s := selector(c)
			reg := s.Registry()
			var entries []versionEntry
			for _, v := range reg.Protocols() {
				entries = append(entries, versionEntry{
					Protocol:  int(v.Protocol),
					Name:      v.Name(),
					Aliases:   v.Aliases(proto.DefaultAliasSeparator),
					Native:    v.Protocol == reg.Native(),
					Supported: reg.Supported(v.Protocol),
				})
			}
			return writeVersions(c.App.Writer, c.String("output"), entries)
		},
	}
}

func writeVersions(w io.Writer, format string, entries []versionEntry) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(entries)
	case "text":
		for _, e := range entries {
			status := resolve.StatusSupported
			if !e.Supported {
				status = resolve.StatusUnsupported
			}
			line := fmt.Sprintf("%4d  %s", e.Protocol, e.Name)
			if e.Native {
				line += "  (native)"
			}
			_, _ = fmt.Fprintln(w, console.Paint(status, line))
		}
		return nil
	default:
		return cli.Exit(fmt.Sprintf("unknown output format: %s (valid formats: text, yaml, json)", format), 1)
	}
}

func pathCommand() *cli.Command {
	return &cli.Command{
		Name:      "path",
		Usage:     "Print the translation path between two protocols",
		ArgsUsage: "FROM TO",
		Description: `FROM and TO are versions or protocol numbers.
With a single argument FROM is the native protocol.`,
		Action: func(c *cli.Context) error {
			s := selector(c)
			reg := s.Registry()
			res := resolve.New(reg)

			args := c.Args().Slice()
			var from, to proto.Protocol
			switch len(args) {
			case 1:
				from = reg.Native()
				to = mustResolve(res, args[0])
			case 2:
				from, to = mustResolve(res, args[0]), mustResolve(res, args[1])
			default:
				return cli.Exit("expected FROM and TO arguments", 1)
			}
			if from.Unknown() || to.Unknown() {
				return cli.Exit(fmt.Sprintf("unknown version in %q", strings.Join(args, " ")), 1)
			}

			path := reg.Path(from, to)
			if path == nil {
				return cli.Exit(fmt.Sprintf("no translation from %s to %s", resolve.DisplayText(reg, from), resolve.DisplayText(reg, to)), 1)
			}
			hops := []string{resolve.DisplayText(reg, from)}
			for _, p := range path {
				hops = append(hops, resolve.DisplayText(reg, p))
			}
			_, _ = fmt.Fprintln(c.App.Writer, strings.Join(hops, " -> "))
			return nil
		},
	}
}

func mustResolve(r *resolve.Resolver, text string) proto.Protocol {
	res := r.Resolve(text, proto.Unknown)
	if !res.Valid {
		return proto.Unknown
	}
	return res.Protocol
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Print whether client-side mode is enabled and the selected protocol",
		Action: func(c *cli.Context) error {
			s := selector(c)
			f := s.Field()
			state := "disabled"
			if f.Visible() {
				state = "enabled"
			}
			w := c.App.Writer
			_, _ = fmt.Fprintf(w, "client-side mode: %s (%s)\n", state, s.Flag().Path())
			_, _ = fmt.Fprintf(w, "native protocol:  %d\n", s.Registry().Native())
			printResult(w, s.Registry(), f.Text(), f.Result())
			return nil
		},
	}
}

func enableCommand() *cli.Command {
	return &cli.Command{
		Name:  "enable",
		Usage: "Enable client-side mode after confirmation",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation",
			},
		},
		Action: func(c *cli.Context) error {
			s := selector(c)
			if s.Flag().Enabled() {
				_, _ = fmt.Fprintln(c.App.Writer, "client-side mode is already enabled")
				return nil
			}
			confirmer := newTerminalConfirmer(c.App.Reader, c.App.Writer, c.Bool("yes"))
			ok, err := s.Field().Enable(c.Context, confirmer)
			if err != nil {
				if errs.IsNonFatal(err) {
					logr.FromContextOrDiscard(c.Context).Info("client-side mode stays disabled", "error", err.Error())
				}
				return cli.Exit(fmt.Errorf("error enabling client-side mode: %w", err), 1)
			}
			if ok {
				_, _ = fmt.Fprintln(c.App.Writer, "client-side mode enabled")
			}
			return nil
		},
	}
}

func disableCommand() *cli.Command {
	return &cli.Command{
		Name:  "disable",
		Usage: "Disable client-side mode",
		Action: func(c *cli.Context) error {
			if err := selector(c).Flag().Disable(); err != nil {
				return cli.Exit(err, 1)
			}
			_, _ = fmt.Fprintln(c.App.Writer, "client-side mode disabled")
			return nil
		},
	}
}
