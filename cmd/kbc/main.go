// kbc is a command line front end for the knuthbendix package: it runs
// Knuth-Bendix completion on built-in or YAML-described presentations,
// rewrites words with the resulting system, and lists the catalog.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gitrdm/gosemigroups/pkg/knuthbendix"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	arrowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	letterStyle = lipgloss.NewStyle().Italic(true)
)

// runConfig is the YAML run-configuration format. Either a catalog
// presentation name or an inline alphabet plus rules must be given.
type runConfig struct {
	Presentation string `yaml:"presentation,omitempty"`
	Alphabet     string `yaml:"alphabet,omitempty"`
	Rules        []struct {
		LHS string `yaml:"lhs"`
		RHS string `yaml:"rhs"`
	} `yaml:"rules,omitempty"`

	Rewriter        string        `yaml:"rewriter,omitempty"`
	Policy          string        `yaml:"policy,omitempty"`
	MaxRules        int           `yaml:"max-rules,omitempty"`
	MaxOverlap      int           `yaml:"max-overlap,omitempty"`
	ByOverlapLength bool          `yaml:"by-overlap-length,omitempty"`
	Timeout         time.Duration `yaml:"timeout,omitempty"`
}

type flags struct {
	config          string
	rewriter        string
	policy          string
	maxRules        int
	maxOverlap      int
	byOverlapLength bool
	timeout         time.Duration
	verbose         bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "kbc",
		Short:         "Knuth-Bendix completion for finitely presented semigroups",
		Version:       knuthbendix.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.config, "config", "", "YAML run configuration file")
	root.PersistentFlags().StringVar(&f.rewriter, "rewriter", "trie", "rewriting strategy: trie or fromleft")
	root.PersistentFlags().StringVar(&f.policy, "policy", "abc", "overlap policy: abc, ab_bc or max_ab_bc")
	root.PersistentFlags().IntVar(&f.maxRules, "max-rules", 0, "stop after this many active rules (0 = unlimited)")
	root.PersistentFlags().IntVar(&f.maxOverlap, "max-overlap", 0, "skip overlaps larger than this (0 = unlimited)")
	root.PersistentFlags().BoolVar(&f.byOverlapLength, "by-overlap-length", false, "escalate the overlap bound 1, 2, 3, ...")
	root.PersistentFlags().DurationVar(&f.timeout, "timeout", 0, "give up after this long (0 = no timeout)")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log progress while running")
	root.AddCommand(newListCmd(), newRunCmd(f), newRewriteCmd(f))
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in presentations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(titleStyle.Render("Built-in presentations"))
			for _, name := range knuthbendix.Catalog() {
				p, _ := knuthbendix.LookupPresentation(name)
				var rels []string
				for _, r := range p.Rules {
					rels = append(rels, fmt.Sprintf("%s = %s", orEpsilon(r.LHS), orEpsilon(r.RHS)))
				}
				fmt.Printf("  %-16s %s | %s\n", name,
					letterStyle.Render(p.Alphabet), strings.Join(rels, ", "))
			}
			return nil
		},
	}
}

func newRunCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "run [presentation]",
		Short: "Run completion and print the resulting rewriting system",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, cfg, err := buildEngine(f, args)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cfg)
			defer cancel()

			start := time.Now()
			var outcome knuthbendix.Outcome
			if cfg.ByOverlapLength {
				outcome = kb.RunByOverlapLength(ctx)
			} else {
				outcome = kb.Run(ctx)
			}
			printRun(kb, outcome, time.Since(start))
			return nil
		},
	}
}

func newRewriteCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "rewrite [presentation] word...",
		Short: "Rewrite words to normal form after completion",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var words []string
			if f.config != "" {
				words = args
			} else {
				if len(args) < 2 {
					return fmt.Errorf("need a presentation name and at least one word")
				}
				args, words = args[:1], args[1:]
			}
			kb, cfg, err := buildEngine(f, args)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cfg)
			defer cancel()

			outcome := kb.Run(ctx)
			if outcome != knuthbendix.OutcomeConfluent {
				fmt.Println(warnStyle.Render("warning: " + outcome.String() +
					"; normal forms may not be canonical"))
			}
			for _, w := range words {
				fmt.Printf("%s %s %s\n", w, arrowStyle.Render("->"), orEpsilon(kb.Rewrite(w)))
			}
			return nil
		},
	}
}

// buildEngine resolves the presentation and the engine options from the
// flags, the optional YAML config, and the positional presentation name.
func buildEngine(f *flags, args []string) (*knuthbendix.KnuthBendix, *runConfig, error) {
	cfg := &runConfig{
		Rewriter:        f.rewriter,
		Policy:          f.policy,
		MaxRules:        f.maxRules,
		MaxOverlap:      f.maxOverlap,
		ByOverlapLength: f.byOverlapLength,
		Timeout:         f.timeout,
	}
	if f.config != "" {
		data, err := os.ReadFile(f.config)
		if err != nil {
			return nil, nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, nil, fmt.Errorf("parsing %s: %w", f.config, err)
		}
	}
	if len(args) == 1 {
		cfg.Presentation = args[0]
	}

	var p knuthbendix.Presentation
	switch {
	case cfg.Presentation != "":
		var ok bool
		if p, ok = knuthbendix.LookupPresentation(cfg.Presentation); !ok {
			return nil, nil, fmt.Errorf("unknown presentation %q (try: kbc list)", cfg.Presentation)
		}
	case cfg.Alphabet != "":
		p.Alphabet = cfg.Alphabet
		for _, r := range cfg.Rules {
			p.AddRule(r.LHS, r.RHS)
		}
	default:
		return nil, nil, fmt.Errorf("no presentation given: name one, or set alphabet and rules in --config")
	}

	opts, err := engineOptions(f, cfg)
	if err != nil {
		return nil, nil, err
	}
	kb, err := knuthbendix.New(&p, opts...)
	if err != nil {
		return nil, nil, err
	}
	return kb, cfg, nil
}

func engineOptions(f *flags, cfg *runConfig) ([]knuthbendix.Option, error) {
	var opts []knuthbendix.Option
	switch strings.ToLower(cfg.Rewriter) {
	case "", "trie":
		opts = append(opts, knuthbendix.WithRewriter(knuthbendix.RewriteTrie))
	case "fromleft":
		opts = append(opts, knuthbendix.WithRewriter(knuthbendix.RewriteFromLeft))
	default:
		return nil, fmt.Errorf("unknown rewriter %q: want trie or fromleft", cfg.Rewriter)
	}
	switch strings.ToLower(cfg.Policy) {
	case "", "abc":
		opts = append(opts, knuthbendix.WithOverlapPolicy(knuthbendix.ABC))
	case "ab_bc":
		opts = append(opts, knuthbendix.WithOverlapPolicy(knuthbendix.AB_BC))
	case "max_ab_bc":
		opts = append(opts, knuthbendix.WithOverlapPolicy(knuthbendix.MAX_AB_BC))
	default:
		return nil, fmt.Errorf("unknown overlap policy %q: want abc, ab_bc or max_ab_bc", cfg.Policy)
	}
	if cfg.MaxRules > 0 {
		opts = append(opts, knuthbendix.WithMaxRules(cfg.MaxRules))
	}
	if cfg.MaxOverlap > 0 {
		opts = append(opts, knuthbendix.WithMaxOverlap(cfg.MaxOverlap))
	}
	if f.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		opts = append(opts,
			knuthbendix.WithLogger(logger),
			knuthbendix.WithReporter(knuthbendix.NewSlogReporter(logger), time.Second))
	}
	return opts, nil
}

func withTimeout(cfg *runConfig) (context.Context, context.CancelFunc) {
	if cfg.Timeout > 0 {
		return context.WithTimeout(context.Background(), cfg.Timeout)
	}
	return context.WithCancel(context.Background())
}

func printRun(kb *knuthbendix.KnuthBendix, outcome knuthbendix.Outcome, elapsed time.Duration) {
	rules := kb.ActiveRules()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Rewriting system (%d rules)", len(rules))))
	for _, r := range rules {
		fmt.Printf("  %s %s %s\n",
			ruleStyle.Render(orEpsilon(r.LHS)),
			arrowStyle.Render("->"),
			ruleStyle.Render(orEpsilon(r.RHS)))
	}
	style := okStyle
	if outcome != knuthbendix.OutcomeConfluent {
		style = warnStyle
	}
	fmt.Printf("%s  rules defined: %d  elapsed: %s\n",
		style.Render(outcome.String()), kb.TotalRules(), elapsed.Round(time.Millisecond))
}

// orEpsilon renders the empty word visibly.
func orEpsilon(w string) string {
	if w == "" {
		return "ε"
	}
	return w
}
