package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrdg/patternmod/host"
	"github.com/mrdg/patternmod/pattern"
	"github.com/mrdg/patternmod/score"
)

var (
	configPath string
	seed       uint64
	logLevel   string
	runPath    string

	applyInput struct {
		mode     string
		pattern  string
		envelope string
		args     string
		weights  string
		choices  int
	}
)

var rootCmd = &cobra.Command{
	Use:           "patternmod",
	Short:         "Transform step patterns of scale degrees and their envelopes",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger(logLevel)
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Send host messages interactively",
	RunE:  runRepl,
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply one transform and print the result",
	RunE:  runApply,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Apply one transform and write the result as a MIDI file to stdout",
	RunE:  runRender,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML settings file")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	replCmd.Flags().StringVar(&runPath, "run", "", "file of messages to send before reading input")

	for _, cmd := range []*cobra.Command{applyCmd, renderCmd} {
		cmd.Flags().StringVar(&applyInput.mode, "mode", "", "transform mode, by name or number")
		cmd.Flags().StringVar(&applyInput.pattern, "pattern", "", "pattern values")
		cmd.Flags().StringVar(&applyInput.envelope, "envelope", "", "envelope tags")
		cmd.Flags().StringVar(&applyInput.args, "args", "", "extra arguments of the mode")
		cmd.Flags().StringVar(&applyInput.weights, "weights", "", "weights for weighted choice")
		cmd.Flags().IntVar(&applyInput.choices, "choices", 0, "number of weighted draws")
		cmd.MarkFlagRequired("pattern")
	}

	rootCmd.AddCommand(replCmd, applyCmd, renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("bad log level %q: %w", level, err)
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(h))
	return nil
}

// newEnv builds the object and its surroundings from the config file and
// flags. Flags win over the file.
func newEnv(w io.Writer) (*env, error) {
	cfg := defaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = loadConfig(configPath); err != nil {
			return nil, err
		}
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	slog.Debug("starting", slog.Uint64("seed", cfg.Seed), slog.String("config", configPath))

	e := &env{out: w, score: cfg.scoreOptions()}
	e.object = host.NewObject(
		host.OutletFunc(e.emit),
		host.WithRand(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed>>1|1))),
		host.WithLogger(slog.Default()),
	)
	if err := e.object.Load(cfg.Settings); err != nil {
		return nil, err
	}
	return e, nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if runPath != "" {
		f, err := os.Open(runPath)
		if err != nil {
			return err
		}
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			result, err := e.eval(line)
			if err != nil {
				return fmt.Errorf("%s: %w", runPath, err)
			}
			printResult(e.out, result)
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}
	if err := repl(e); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// applyFlags sends the flag inputs to the object, pattern last.
func applyFlags(e *env) error {
	var lines []string
	add := func(name, values string) {
		if values != "" {
			lines = append(lines, name+" "+values)
		}
	}
	add("mode", applyInput.mode)
	add("envelope", applyInput.envelope)
	add("args", applyInput.args)
	add("weights", applyInput.weights)
	if applyInput.choices != 0 {
		add("choices", fmt.Sprint(applyInput.choices))
	}
	add("pattern", applyInput.pattern)
	for _, line := range lines {
		if _, err := e.eval(line); err != nil {
			return err
		}
	}
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := applyFlags(e); err != nil {
		return err
	}
	printResult(e.out, formatOutput(*e.last))
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := applyFlags(e); err != nil {
		return err
	}
	cfg := e.object.Config()
	if e.last.Mode.NeedsWeights() {
		return fmt.Errorf("%w: %v does not produce a pattern", pattern.ErrInvalidArgument, e.last.Mode)
	}
	return score.Write(e.out, e.last.Pattern, e.last.Envelope, cfg, e.score)
}
