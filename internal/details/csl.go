// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package details

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	PMID           string    `yaml:"PMID,omitempty"`
	Keyword        string    `yaml:"keyword,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the normalized records as a CSL-YAML list to w. Error
// placeholders are skipped and fallback values are left out of the entries.
func FormatCSL(results []types.DetailResult, w io.Writer) error {
	items := make([]CSLItem, 0, len(results))
	for _, r := range results {
		if !r.OK() {
			continue
		}
		items = append(items, toCSLItem(*r.DetailRecord))
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a DetailRecord to a CSLItem.
func toCSLItem(r types.DetailRecord) CSLItem {
	item := CSLItem{
		ID:    "pmid:" + r.PMID,
		Type:  "article-journal",
		Title: r.Title,
		PMID:  r.PMID,
	}

	if r.Abstract != types.FallbackAbstract {
		item.Abstract = r.Abstract
	}
	if r.Journal != types.NotAvailable {
		item.ContainerTitle = r.Journal
	}
	for _, a := range r.Authors {
		if a == types.NotAvailable {
			continue
		}
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if year, ok := leadingYear(r.PublicationYear); ok {
		item.Issued = &CSLDate{DateParts: [][]int{{year}}}
	}
	if len(r.MeshTerms) > 0 && r.MeshTerms[0] != types.NotAvailable {
		item.Keyword = strings.Join(r.MeshTerms, ", ")
	}

	return item
}

// leadingYear reads the four-digit year that starts both Year values and
// MedlineDate values such as "1998 Dec-1999 Jan".
func leadingYear(s string) (int, bool) {
	if len(s) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0, false
	}
	return y, true
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
