// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-gateway/internal/details"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [ids...]",
	Short: "Fetch and normalize full PubMed records",
	Long: `Fetch retrieves the given PubMed ids with a single efetch call and
normalizes each article into a detail record. Articles that cannot be
normalized are reported in place without failing the rest.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("db", "", "E-utilities database (default from search.default_database, pubmed)")
	fetchCmd.Flags().Bool("json", false, "output records as JSON")
	fetchCmd.Flags().Bool("yaml", false, "output records as YAML")
	fetchCmd.Flags().Bool("csl", false, "output records as CSL YAML for citation tools")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PubMed ids")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	asCSL, _ := cmd.Flags().GetBool("csl")
	format, err := outputFormat(asJSON, asYAML)
	if err != nil {
		return err
	}
	if asCSL && format != "text" {
		return fmt.Errorf("--csl cannot be combined with --json or --yaml")
	}

	db, _ := cmd.Flags().GetString("db")
	if db == "" {
		db = cfg.Search.DefaultDatabase
	}

	results, err := details.Fetch(context.Background(), newClient(cfg.Eutils), db, args)
	if err != nil {
		return err
	}

	switch {
	case asCSL:
		return details.FormatCSL(results, os.Stdout)
	case format == "json":
		return details.FormatJSON(results, os.Stdout)
	case format == "yaml":
		return details.FormatYAML(results, os.Stdout)
	}
	details.FormatText(results, os.Stdout)
	return nil
}
