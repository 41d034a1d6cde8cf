package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcvoid/jsontree"
	"github.com/mcvoid/jsontree/canon"
)

func newCanonCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "canon [flags] <file>",
		Short: "Rewrite a JSON document into RFC 8785 canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var docPath string
			if len(args) == 1 {
				docPath = args[0]
			}
			return runCanon(docPath, outPath)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output path (default: stdout)")

	return cmd
}

func runCanon(docPath, outPath string) error {
	docBytes, err := readInput(docPath)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	doc, err := jsontree.ParseBytes(docBytes)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	out, err := canon.Marshal(doc)
	if err != nil {
		return fmt.Errorf("canonicalizing document: %w", err)
	}
	out = append(out, '\n')

	if outPath == "" || outPath == "-" {
		_, err = os.Stdout.Write(out)
	} else {
		err = os.WriteFile(outPath, out, 0o644)
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Debug("canonicalized document", "bytes", len(out))
	return nil
}
