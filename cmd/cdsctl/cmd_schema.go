package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdscore/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the embedded artifact schema",
	RunE:  runSchema,
}

func runSchema(cmd *cobra.Command, _ []string) error {
	if _, err := schema.Load(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", schema.Raw())
	return nil
}
