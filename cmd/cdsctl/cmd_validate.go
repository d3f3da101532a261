package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdscore/internal/document"
	"cdscore/internal/schema"
)

var validateFlags struct {
	file     string
	defaults bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON document against the artifact schema",
	RunE:  runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVarP(&validateFlags.file, "file", "f", "", "Document path, or - for stdin (required)")
	f.BoolVar(&validateFlags.defaults, "defaults", false, "Apply schema defaults before validating")
	_ = validateCmd.MarkFlagRequired("file")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	doc, err := readDocumentFile(validateFlags.file, document.Decode)
	if err != nil {
		return err
	}
	res, err := schema.ValidateDocument(doc, validateFlags.defaults)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if res.Valid() {
		fmt.Fprintf(out, "%s: valid against %q\n", validateFlags.file, schema.Title())
		return nil
	}
	for _, v := range res.Violations {
		fmt.Fprintln(out, v.String())
	}
	return fmt.Errorf("%d violation(s)", len(res.Violations))
}
