package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/convokit/annotate"
	"github.com/kbukum/convokit/transcript"
)

type annotateOptions struct {
	input    string
	output   string
	format   string
	vocab    string
	pipeline string
	compact  bool
}

func newAnnotateCommand(a *app) *cobra.Command {
	o := &annotateOptions{}
	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Annotate a transcript and print the resolved document as JSON",
		Example: `  convokit annotate -i words.json -f chat
  convokit annotate -i words.json --vocab brackets.yaml --pipeline timing.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnnotate(cmd, a, o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.input, "input", "i", "-", "transcript JSON file, - for stdin")
	f.StringVarP(&o.output, "output", "o", "-", "output file, - for stdout")
	f.StringVarP(&o.format, "format", "f", "", "vocabulary name (chat, txt, csv, xml, raw)")
	f.StringVar(&o.vocab, "vocab", "", "YAML vocabulary file; overrides --format")
	f.StringVar(&o.pipeline, "pipeline", "", "YAML pipeline definition")
	f.BoolVar(&o.compact, "compact", false, "print compact JSON")
	return cmd
}

func runAnnotate(cmd *cobra.Command, a *app, o *annotateOptions) error {
	cfg := a.cfg.Config
	format := o.format
	if o.pipeline != "" {
		cfg.Pipeline.File = o.pipeline
	}
	if o.vocab != "" {
		format = strings.TrimSuffix(filepath.Base(o.vocab), filepath.Ext(o.vocab))
		files := map[string]string{format: o.vocab}
		for k, v := range cfg.Vocabulary.Files {
			if _, ok := files[k]; !ok {
				files[k] = v
			}
		}
		cfg.Vocabulary.Files = files
	}

	svc, err := annotate.New(cfg)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(cmd, o.input)
	if err != nil {
		return err
	}
	defer closeIn()

	t, err := transcript.Decode(in)
	if err != nil {
		return err
	}

	doc, err := svc.Annotate(cmd.Context(), t, format)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, o.output)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	if !o.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// openOutput returns the writer for path and a close func whose error
// reports a failed flush of the output file.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
