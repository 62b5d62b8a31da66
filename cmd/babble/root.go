package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"babble/gen"
	"babble/lexicon"
	"babble/transform"
	"babble/words"
)

type cliOptions struct {
	seed       int64
	lexPath    string
	archetype  string
	strict     bool
	trace      bool
	transforms []string

	count        int
	sentenceType string
	minWords     int
	maxWords     int
	paragraphs   int
	sentences    int
}

var opts cliOptions

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "babble",
		Short:         "Deterministic nonsense-text generator",
		Long:          "babble generates grammatical nonsense text from a seeded stream.\nThe same seed, lexicon and flags always reproduce the same output.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.Int64Var(&opts.seed, "seed", 1, "seed for the deterministic stream")
	pf.StringVar(&opts.lexPath, "lexicon", "", "path to a lexicon JSON file")
	pf.StringVar(&opts.archetype, "archetype", "", "archetype to activate from the lexicon")
	pf.BoolVar(&opts.strict, "strict", false, "fail instead of degrading when no valid sentence is found")
	pf.BoolVar(&opts.trace, "trace", false, "print the generation trace as JSON on stderr")
	pf.StringSliceVar(&opts.transforms, "transform", nil, "transform pipeline applied to the output (shout, mock, leet, reverse, piglatin)")

	root.AddCommand(
		newSentenceCmd(),
		newParagraphCmd(),
		newTextCmd(),
		newLexiconCmd(),
		newConsoleCmd(),
	)
	return root
}

func newSentenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentence",
		Short: "Generate sentences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, pipe, err := newSession()
			if err != nil {
				return err
			}
			for i := 0; i < opts.count; i++ {
				res, err := g.Sentence(gen.SentenceOptions{
					Type:     gen.SentenceType(opts.sentenceType),
					MinWords: opts.minWords,
					MaxWords: opts.maxWords,
					Trace:    opts.trace,
				})
				if err != nil {
					return err
				}
				if err := emit(cmd, res, pipe); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.count, "count", 1, "number of sentences")
	cmd.Flags().StringVar(&opts.sentenceType, "type", "", "force a sentence type (simpleDeclarative, compound, introAdverbial, subordinate, interjection, question)")
	cmd.Flags().IntVar(&opts.minWords, "min-words", 0, "minimum words per sentence")
	cmd.Flags().IntVar(&opts.maxWords, "max-words", 0, "maximum words per sentence")
	return cmd
}

func newParagraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paragraph",
		Short: "Generate paragraphs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, pipe, err := newSession()
			if err != nil {
				return err
			}
			for i := 0; i < opts.count; i++ {
				res, err := g.Paragraph(gen.ParagraphOptions{
					Sentences: opts.sentences,
					Type:      gen.SentenceType(opts.sentenceType),
					Trace:     opts.trace,
				})
				if err != nil {
					return err
				}
				if err := emit(cmd, res, pipe); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.count, "count", 1, "number of paragraphs")
	cmd.Flags().IntVar(&opts.sentences, "sentences", 0, "exact sentences per paragraph (0 draws from config bounds)")
	cmd.Flags().StringVar(&opts.sentenceType, "type", "", "force every sentence to one type")
	return cmd
}

func newTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Generate a multi-paragraph text block",
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, pipe, err := newSession()
			if err != nil {
				return err
			}
			res, err := g.Text(gen.TextOptions{
				Paragraphs: opts.paragraphs,
				Trace:      opts.trace,
			})
			if err != nil {
				return err
			}
			return emit(cmd, res, pipe)
		},
	}
	cmd.Flags().IntVar(&opts.paragraphs, "paragraphs", 0, "exact paragraph count (0 draws from default bounds)")
	return cmd
}

func newLexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Lexicon utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <file>",
		Short: "Validate a lexicon file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := lexicon.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"%s: ok (%d term sets, %d patterns, %d archetypes, %d constraints)\n",
				lex.ID, len(lex.TermSets), len(lex.Patterns), len(lex.Archetypes), len(lex.Constraints))
			return nil
		},
	})
	return cmd
}

// newSession builds the generator and transform pipeline from the persistent
// flags. Explicit --transform wins over the archetype's pipeline.
func newSession() (*gen.Generator, *transform.Pipeline, error) {
	var lex *lexicon.Lexicon
	if opts.lexPath != "" {
		var err error
		lex, err = lexicon.LoadFile(opts.lexPath)
		if err != nil {
			return nil, nil, err
		}
	}

	cfg := gen.DefaultConfig()
	cfg.StrictMode = opts.strict

	g, err := gen.New(cfg, lex, words.NewSeededSource(opts.seed))
	if err != nil {
		return nil, nil, err
	}
	g.SetSeed(opts.seed)
	if err := g.SetArchetype(opts.archetype); err != nil {
		return nil, nil, err
	}

	names := opts.transforms
	if len(names) == 0 {
		names = g.ArchetypeTransforms()
	}
	pipe, err := transform.NewRegistry().NewPipeline(names)
	if err != nil {
		return nil, nil, err
	}
	return g, pipe, nil
}

func emit(cmd *cobra.Command, res gen.Result, pipe *transform.Pipeline) error {
	fmt.Fprintln(cmd.OutOrStdout(), pipe.Apply(res.Text))
	if opts.trace && res.Trace != nil {
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Meta  gen.Meta
			Trace *gen.Trace
		}{res.Meta, res.Trace})
	}
	return nil
}
