package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdscore/pkg/artifact"
)

var termsFlags struct {
	vocabulary string
	names      []string
}

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Manage controlled-vocabulary terms",
}

var termsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Seed terms into a vocabulary",
	RunE:  runTermsAdd,
}

var termsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the terms of a vocabulary",
	RunE:  runTermsList,
}

func init() {
	termsCmd.AddCommand(termsAddCmd)
	termsCmd.AddCommand(termsListCmd)

	f := termsAddCmd.Flags()
	f.StringVar(&termsFlags.vocabulary, "vocabulary", "", "Vocabulary name (required)")
	f.StringSliceVar(&termsFlags.names, "name", nil, "Term name, repeatable (required)")
	_ = termsAddCmd.MarkFlagRequired("vocabulary")
	_ = termsAddCmd.MarkFlagRequired("name")

	termsListCmd.Flags().StringVar(&termsFlags.vocabulary, "vocabulary", "", "Vocabulary name (required)")
	_ = termsListCmd.MarkFlagRequired("vocabulary")
}

func runTermsAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = e.close() }()

	out := cmd.OutOrStdout()
	return e.store.RunInTransaction(ctx, func(tx artifact.Tx) error {
		for _, name := range termsFlags.names {
			term, err := tx.CreateTerm(artifact.Term{Vocabulary: termsFlags.vocabulary, Name: name})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\t%s\t%s\n", term.ID, term.Vocabulary, term.Name)
		}
		return nil
	})
}

func runTermsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = e.close() }()

	out := cmd.OutOrStdout()
	return e.store.View(ctx, func(v artifact.View) error {
		for _, term := range v.ListTerms(termsFlags.vocabulary) {
			fmt.Fprintf(out, "%s\t%s\n", term.ID, term.Name)
		}
		return nil
	})
}
