package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdscore/internal/document"
)

var updateFlags struct {
	id   string
	file string
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rewrite a persisted artifact from a document",
	RunE:  runUpdate,
}

func init() {
	f := updateCmd.Flags()
	f.StringVar(&updateFlags.id, "id", "", "Root node id (required)")
	f.StringVarP(&updateFlags.file, "file", "f", "", "Document path, or - for stdin (required)")
	_ = updateCmd.MarkFlagRequired("id")
	_ = updateCmd.MarkFlagRequired("file")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = e.close() }()

	raw, err := readDocumentFile(updateFlags.file, document.Decode)
	if err != nil {
		return err
	}
	a, err := document.LoadDocument(raw, false)
	if err != nil {
		return err
	}
	a.NodeID = updateFlags.id
	if err := e.mapper.Update(ctx, a); err != nil {
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
