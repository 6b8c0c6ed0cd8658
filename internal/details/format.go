// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package details

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

// FormatText writes results as human-readable blocks to w.
func FormatText(results []types.DetailResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if !r.OK() {
			fmt.Fprintf(w, "[%d] error: %s\n", i+1, r.Error)
			continue
		}
		fmt.Fprintf(w, "[%d] PMID %s (%s)\n", i+1, r.PMID, r.PublicationYear)
		fmt.Fprintf(w, "    %s\n", r.Title)
		fmt.Fprintf(w, "    %s\n", r.Journal)
		fmt.Fprintf(w, "    Authors: %s\n", strings.Join(r.Authors, ", "))
		fmt.Fprintf(w, "    MeSH: %s\n", strings.Join(r.MeshTerms, "; "))
		fmt.Fprintf(w, "    %s\n", r.Abstract)
	}
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.DetailResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// FormatYAML writes results as a YAML list to w.
func FormatYAML(results []types.DetailResult, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(results)
}
