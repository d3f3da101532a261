package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdscore/internal/document"
)

var getFlags struct {
	id string
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the external projection of a persisted artifact",
	RunE:  runGet,
}

func init() {
	getCmd.Flags().StringVar(&getFlags.id, "id", "", "Root node id (required)")
	_ = getCmd.MarkFlagRequired("id")
}

func runGet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = e.close() }()

	a, err := e.mapper.FromGraph(ctx, getFlags.id)
	if err != nil {
		return err
	}
	b, err := document.ToExternal(a).Encode()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
	return nil
}
