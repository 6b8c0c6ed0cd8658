// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-gateway/internal/paginate"
	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Fetch one page of PubMed summary records",
	Long: `Search runs a term against E-utilities and prints one page of summary
records. The output includes the WebEnv/query_key session and the parameters
for the next and previous pages; pass --webenv and --query-key back to resume
the same result set without re-running the search.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("term", "", "search term (required unless resuming a session)")
	searchCmd.Flags().String("webenv", "", "history session token from a previous page")
	searchCmd.Flags().String("query-key", "", "query key from a previous page")
	searchCmd.Flags().Int("limit", 0, "page size (default from search.default_limit, 5)")
	searchCmd.Flags().Int("offset", 0, "zero-based position of the first record")
	searchCmd.Flags().String("db", "", "E-utilities database (default from search.default_database, pubmed)")
	searchCmd.Flags().Bool("json", false, "output the page as JSON")
	searchCmd.Flags().Bool("yaml", false, "output the page as YAML")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	format, err := outputFormat(asJSON, asYAML)
	if err != nil {
		return err
	}

	req := types.PageRequest{Database: cfg.Search.DefaultDatabase, Limit: cfg.Search.DefaultLimit}
	req.Term, _ = cmd.Flags().GetString("term")
	req.SessionToken, _ = cmd.Flags().GetString("webenv")
	req.QueryKey, _ = cmd.Flags().GetString("query-key")
	req.Offset, _ = cmd.Flags().GetInt("offset")
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		req.Database = db
	}
	if cmd.Flags().Changed("limit") {
		req.Limit, _ = cmd.Flags().GetInt("limit")
	}

	page, err := paginate.Paginate(context.Background(), newClient(cfg.Eutils), req)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return paginate.FormatJSON(page, os.Stdout)
	case "yaml":
		return paginate.FormatYAML(page, os.Stdout)
	}
	paginate.FormatTable(page, os.Stdout)
	return nil
}
