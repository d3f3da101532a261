package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdscore/internal/document"
)

var importFlags struct {
	file     string
	defaults bool
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a document, persist it, and print the stored projection",
	RunE:  runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVarP(&importFlags.file, "file", "f", "", "Document path, or - for stdin (required)")
	f.BoolVar(&importFlags.defaults, "defaults", true, "Apply schema defaults while loading")
	_ = importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = e.close() }()

	raw, err := readDocumentFile(importFlags.file, document.Decode)
	if err != nil {
		return err
	}
	a, err := document.LoadDocument(raw, importFlags.defaults)
	if err != nil {
		return err
	}
	if err := e.mapper.Create(ctx, a); err != nil {
		return err
	}
	stored, err := e.mapper.FromGraph(ctx, a.NodeID)
	if err != nil {
		return err
	}
	b, err := document.ToExternal(stored).Encode()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
	return nil
}
