package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcvoid/jsontree"
)

func newValidateCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate [flags] <file>",
		Short: "Validate a JSON document against a schema document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var docPath string
			if len(args) == 1 {
				docPath = args[0]
			}
			return runValidate(schemaPath, docPath)
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to the schema document (required)")
	cmd.MarkFlagRequired("schema")

	return cmd
}

func runValidate(schemaPath, docPath string) error {
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	schema, err := jsontree.ParseBytes(schemaBytes)
	if err != nil {
		return fmt.Errorf("parsing schema: %w", err)
	}

	docBytes, err := readInput(docPath)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	doc, err := jsontree.ParseBytes(docBytes)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	if err := jsontree.Validate(schema, doc); err != nil {
		logger.Error("document does not match schema", "err", err)
		os.Exit(1)
	}
	logger.Info("document matches schema")
	return nil
}
