// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paginate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

// FormatTable writes a page as a human-readable table to w, followed by the
// parameters needed to fetch the neighbouring pages.
func FormatTable(resp types.PageResponse, w io.Writer) {
	if len(resp.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
	} else {
		fmt.Fprintf(w, "%-10s  %-60s  %-24s  %s\n", "PMID", "Title", "Authors", "Year")
		fmt.Fprintln(w, strings.Repeat("-", 104))
		for _, r := range resp.Results {
			fmt.Fprintf(w, "%-10s  %-60s  %-24s  %s\n",
				r.ID, truncate(r.Title, 60), truncate(r.Authors, 24), r.Year)
		}
	}

	fmt.Fprintf(w, "\n%d of %d results (webenv %s, query_key %s)\n",
		len(resp.Results), resp.Count, resp.WebEnv, resp.QueryKey)
	if resp.Next != nil {
		fmt.Fprintf(w, "next:     %s\n", resp.Next.Values().Encode())
	}
	if resp.Previous != nil {
		fmt.Fprintf(w, "previous: %s\n", resp.Previous.Values().Encode())
	}
}

// FormatJSON writes the page as indented JSON to w.
func FormatJSON(resp types.PageResponse, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// FormatYAML writes the page as YAML to w.
func FormatYAML(resp types.PageResponse, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(resp)
}

// truncate shortens s to at most max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
