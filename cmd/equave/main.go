// Command equave inspects equave-cyclic scales: it prints degrees and
// modes, resolves indices to pitches and exports them as MIDI files.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jangler/equave/collection"
	"github.com/jangler/equave/interval"
	"github.com/jangler/equave/pitch"
)

// state shared by all commands of one invocation
type app struct {
	settingsPath string
	scaleName    string
	equave       string
	reference    float64

	settings *settings
	log      *zap.Logger
	library  *library
	registry *collection.Registry
	out      io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, log: zap.NewNop()}
	root := &cobra.Command{
		Use:          "equave",
		Short:        "Inspect equave-cyclic scales and resolve them to pitches",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.SetOut(out)
	flags := root.PersistentFlags()
	flags.StringVar(&a.settingsPath, "config", defaultSettingsPath, "settings CSV file")
	flags.StringVarP(&a.scaleName, "scale", "s", "", "library scale name or .scl file (default: degrees from args)")
	flags.StringVarP(&a.equave, "equave", "e", "", "equave for degrees given as args (default 2/1)")
	flags.Float64VarP(&a.reference, "ref", "r", 0, "reference frequency in Hz (default from settings)")

	root.AddCommand(
		a.showCmd(),
		a.modeCmd(),
		a.resolveCmd(),
		a.exportCmd(),
		a.scalesCmd(),
		a.importCmd(),
	)
	return root
}

// load settings, logger, library and registry
func (a *app) init(cmd *cobra.Command) error {
	var warnings []string
	a.settings = loadSettings(a.settingsPath, func(s string) {
		warnings = append(warnings, s)
	})

	config := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(a.settings.LogLevel)
	if err != nil {
		warnings = append(warnings, err.Error())
	} else {
		config.Level = level
	}
	if a.log, err = config.Build(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	for _, w := range warnings {
		a.log.Warn("settings", zap.String("warning", w))
	}

	if a.library, err = loadLibrary(a.settings.ScaleLibrary); err != nil {
		return err
	}
	a.registry = collection.NewRegistry(a.settings.RegistryCapacity, collection.WithLogger(a.log))
	if a.reference <= 0 {
		a.reference = a.settings.ReferenceFreq
	}
	a.log.Debug("initialized",
		zap.String("command", cmd.Name()),
		zap.Float64("reference", a.reference),
		zap.Int("scales", len(a.library.Scales)))
	return nil
}

// build the scale named by --scale, or from degrees given as args
func (a *app) loadScale(args []string) (*collection.Scale, error) {
	switch {
	case strings.HasSuffix(a.scaleName, ".scl"):
		_, _, s, err := readSclFile(a.scaleName)
		return s, err
	case a.scaleName != "":
		return a.library.scale(a.scaleName)
	case len(args) == 0:
		return nil, fmt.Errorf("no degrees given and no --scale")
	}
	degrees, err := interval.ParseAll(args...)
	if err != nil {
		return nil, err
	}
	var opts []collection.Option
	if a.equave != "" {
		equave, err := interval.Parse(a.equave)
		if err != nil {
			return nil, fmt.Errorf("equave: %w", err)
		}
		opts = append(opts, collection.WithEquave(equave))
	}
	return collection.NewScale(degrees, opts...)
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [degree...]",
		Short: "Print a scale's degrees and steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadScale(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, s)
			fmt.Fprintln(a.out, "steps:", joinValues(s.Intervals()))
			return nil
		},
	}
}

func (a *app) modeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mode k [degree...]",
		Short: "Print mode k of a scale",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("mode number: %w", err)
			}
			s, err := a.loadScale(args[1:])
			if err != nil {
				return err
			}
			m, err := s.Mode(k)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, m)
			return nil
		},
	}
}

func (a *app) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve lo hi [degree...]",
		Short: "Print the pitches at indices [lo, hi) above the reference",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, hi, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}
			s, err := a.loadScale(args[2:])
			if err != nil {
				return err
			}
			ps, err := a.registry.Root(s, pitch.FromFreq(a.reference)).Range(lo, hi)
			if err != nil {
				return err
			}
			for i, p := range ps {
				partial, _ := p.Partial()
				fmt.Fprintf(a.out, "%d\t%s\t%s\n", lo+i, partial, p)
			}
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export file.mid lo hi [degree...]",
		Short: "Write indices [lo, hi) as a MIDI arpeggio",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, hi, err := parseRange(args[1], args[2])
			if err != nil {
				return err
			}
			s, err := a.loadScale(args[3:])
			if err != nil {
				return err
			}
			addr := a.registry.Root(s, pitch.FromFreq(a.reference))
			if err := exportSMF(args[0], addr, lo, hi, a.settings); err != nil {
				return err
			}
			a.log.Info("exported", zap.String("path", args[0]), zap.Int("notes", hi-lo))
			return nil
		},
	}
}

func (a *app) scalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scales",
		Short: "List scales in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range a.library.names() {
				def := a.library.Scales[name]
				fmt.Fprintf(a.out, "%s\t%d\t%s\n", name, len(def.Degrees), def.Description)
			}
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import file.scl...",
		Short: "Add scala files to the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				name, description, s, err := readSclFile(path)
				if err != nil {
					return err
				}
				a.library.add(name, description, s)
				a.log.Info("imported", zap.String("scale", name), zap.Int("degrees", s.Len()))
			}
			return a.library.write(a.settings.ScaleLibrary)
		},
	}
}

func parseRange(los, his string) (int, int, error) {
	lo, err := strconv.Atoi(los)
	if err != nil {
		return 0, 0, fmt.Errorf("lo: %w", err)
	}
	hi, err := strconv.Atoi(his)
	if err != nil {
		return 0, 0, fmt.Errorf("hi: %w", err)
	}
	if hi < lo {
		return 0, 0, fmt.Errorf("range [%d, %d): %w", lo, hi, collection.ErrOutOfRange)
	}
	return lo, hi, nil
}

func joinValues(vs []interval.Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}
