// Package cli implements the compatctl command line application: inspection
// and dry-run tooling for the legacy operation catalog.
package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/appdeploykit/compat-framework/catalog"
	"github.com/appdeploykit/compat-framework/compat"
	"github.com/appdeploykit/compat-framework/param"
	"github.com/appdeploykit/compat-framework/pkg/logger"
)

// App is the compatctl application.
type App struct {
	lggr logger.Logger
	root *cobra.Command

	catalogPath string
}

// New creates the application with its command tree.
func New(lggr logger.Logger) *App {
	app := &App{lggr: lggr}

	app.root = &cobra.Command{
		Use:           "compatctl",
		Short:         "Inspect and dry-run the legacy compatibility catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	app.root.PersistentFlags().StringVar(&app.catalogPath, "catalog", "",
		"load a YAML catalog instead of the built-in one")

	app.root.AddCommand(
		app.listCmd(),
		app.explainCmd(),
		app.translateCmd(),
	)

	return app
}

// Run executes the root command.
func (a *App) Run() error {
	return a.root.Execute()
}

// RootCmd returns the root command, for tests.
func (a *App) RootCmd() *cobra.Command {
	return a.root
}

func (a *App) registry() (*compat.Registry, error) {
	if a.catalogPath == "" {
		return catalog.Registry(), nil
	}

	ops, err := catalog.Load(a.catalogPath)
	if err != nil {
		return nil, err
	}

	return compat.NewRegistry(ops...), nil
}

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List legacy operations and their replacements",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}

			for _, name := range reg.Names() {
				op, err := reg.Retrieve(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-35s -> %s@%s\n",
					op.Name, op.Replacement.ID, op.Replacement.Version)
			}

			return nil
		},
	}
}

func (a *App) explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <operation>",
		Short: "Show the translation rules of a legacy operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			op, err := reg.Retrieve(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s -> %s@%s\n", op.Name, op.Replacement.ID, op.Replacement.Version)
			if op.Replacement.Description != "" {
				fmt.Fprintf(out, "  %s\n", op.Replacement.Description)
			}
			fmt.Fprintf(out, "error mode parameter: %s\n", op.ContinueOnErrorParam())
			if op.PassThruParam() != "" {
				fmt.Fprintf(out, "pass-through parameter: %s\n", op.PassThruParam())
			}
			if op.Streaming() {
				fmt.Fprintf(out, "pipeline parameter: %s (batched into a single call)\n", op.PipelineParam())
			}

			fmt.Fprintln(out, "steps:")
			if len(op.Steps) == 0 {
				fmt.Fprintln(out, "  (none, parameters forward unchanged)")
			}
			for i, step := range op.Steps {
				fmt.Fprintf(out, "  %d. %s\n", i+1, step.Describe())
			}

			accepts := make([]string, len(op.Accepts))
			copy(accepts, op.Accepts)
			sort.Strings(accepts)
			fmt.Fprintf(out, "replacement accepts: %s\n", strings.Join(accepts, ", "))

			return nil
		},
	}
}

func (a *App) translateCmd() *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "translate <operation>",
		Short: "Dry-run the translation of a legacy call without invoking anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			op, err := reg.Retrieve(args[0])
			if err != nil {
				return err
			}

			supplied, err := parseParams(params)
			if err != nil {
				return err
			}

			t, terr := compat.Translate(op, supplied)

			doc := map[string]any{
				"operation":   op.Name,
				"replacement": fmt.Sprintf("%s@%s", op.Replacement.ID, op.Replacement.Version),
			}
			if terr != nil {
				doc["error"] = terr.Error()
			} else {
				doc["forwarded"] = t.Bag.ToMap()
				doc["continueOnError"] = t.ContinueOnError
				if op.PassThruParam() != "" {
					doc["passThru"] = t.PassThru
				}
			}
			if len(t.DeadNotices) > 0 {
				msgs := make([]string, 0, len(t.DeadNotices))
				for _, n := range t.DeadNotices {
					msgs = append(msgs, n.Message)
				}
				doc["deadParameterNotices"] = msgs
			}

			out, err := yaml.Marshal(doc)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))

			if terr != nil {
				return terr
			}

			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil,
		"legacy parameter as name=value (repeatable); bools and ints are detected")

	return cmd
}

// parseParams converts name=value flags into a Bag. Values parse as bool,
// then int, then fall back to string; a value with commas stays a string so
// Split steps see the historical form.
func parseParams(pairs []string) (param.Bag, error) {
	bag := param.New()
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return param.Bag{}, fmt.Errorf("parameter %q is not in name=value form", pair)
		}

		var value any = raw
		if b, err := strconv.ParseBool(raw); err == nil {
			value = b
		} else if i, err := strconv.Atoi(raw); err == nil {
			value = i
		}
		bag = bag.With(name, value)
	}

	return bag, nil
}
