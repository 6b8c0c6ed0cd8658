// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package details fetches full PubMed records and normalizes the loosely
// structured efetch XML into fixed-shape DetailRecords. Every field has a
// fallback; a record that cannot be normalized becomes an error placeholder
// without affecting its neighbours.
package details

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pdiddy/pubmed-gateway/internal/xmltree"
	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

// inlineMarkup strips the formatting elements PubMed embeds in titles and
// abstracts (gene names, formulas, statistics).
var inlineMarkup = xmltree.NewFlattener("i", "b", "u", "sup", "sub")

// Fetcher retrieves the raw efetch XML for a set of ids.
type Fetcher interface {
	Fetch(ctx context.Context, database string, ids []string) ([]byte, error)
}

// Fetch retrieves ids from the upstream in a single call and normalizes the
// result. Output order follows the upstream document; ids are not
// deduplicated.
func Fetch(ctx context.Context, f Fetcher, database string, ids []string) ([]types.DetailResult, error) {
	if len(ids) == 0 {
		return nil, types.Validationf("Missing 'ids' query parameter")
	}
	if database == "" {
		database = types.DefaultDatabase
	}

	doc, err := f.Fetch(ctx, database, ids)
	if err != nil {
		return nil, err
	}
	return Normalize(doc)
}

// Normalize parses an efetch PubmedArticleSet document and extracts one
// result per PubmedArticle.
func Normalize(doc []byte) ([]types.DetailResult, error) {
	root, err := xmltree.Parse(inlineMarkup.Flatten(doc))
	if err != nil {
		return nil, &types.ParseError{Doc: "efetch document", Err: err}
	}

	node, err := xmltree.Path(root, "PubmedArticleSet", "PubmedArticle")
	if err != nil {
		return nil, &types.ParseError{Doc: "efetch document", Err: err}
	}

	articles := xmltree.List(node)
	results := make([]types.DetailResult, 0, len(articles))
	for i, article := range articles {
		rec, err := extractRecord(article)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("failed to normalize article")
			results = append(results, types.DetailResult{
				Error: fmt.Sprintf("Failed to process article: %v", err),
			})
			continue
		}
		results = append(results, types.DetailResult{DetailRecord: &rec})
	}
	return results, nil
}

// extractRecord builds a DetailRecord from one PubmedArticle node. Each
// field is extracted independently; an error means the node has a shape no
// field extractor can read.
func extractRecord(article any) (types.DetailRecord, error) {
	var rec types.DetailRecord

	medline, err := xmltree.Child(article, "MedlineCitation")
	if err != nil {
		return rec, err
	}
	art, err := xmltree.Child(medline, "Article")
	if err != nil {
		return rec, err
	}

	if rec.PMID, err = textOr(medline, types.NotAvailable, "PMID"); err != nil {
		return rec, fmt.Errorf("PMID: %w", err)
	}
	if rec.Title, err = textOr(art, types.NotAvailable, "ArticleTitle"); err != nil {
		return rec, fmt.Errorf("title: %w", err)
	}
	if rec.Abstract, err = abstract(art); err != nil {
		return rec, fmt.Errorf("abstract: %w", err)
	}
	if rec.Authors, err = authors(art); err != nil {
		return rec, fmt.Errorf("authors: %w", err)
	}
	if rec.Journal, err = textOr(art, types.NotAvailable, "Journal", "Title"); err != nil {
		return rec, fmt.Errorf("journal: %w", err)
	}
	if rec.PublicationYear, err = publicationYear(art); err != nil {
		return rec, fmt.Errorf("publication year: %w", err)
	}
	if rec.MeshTerms, err = meshTerms(medline); err != nil {
		return rec, fmt.Errorf("MeSH terms: %w", err)
	}
	return rec, nil
}

// textOr returns the trimmed text at path, or fallback when it is blank.
func textOr(node any, fallback string, path ...string) (string, error) {
	s, err := xmltree.TextAt(node, path...)
	if err != nil {
		return "", err
	}
	if s = strings.TrimSpace(s); s == "" {
		return fallback, nil
	}
	return s, nil
}

// abstract joins the AbstractText segments with single spaces. Structured
// abstracts arrive as several labelled segments; unstructured ones as one.
func abstract(art any) (string, error) {
	node, err := xmltree.Path(art, "Abstract", "AbstractText")
	if err != nil {
		return "", err
	}

	var parts []string
	for _, seg := range xmltree.List(node) {
		s, err := xmltree.Text(seg)
		if err != nil {
			return "", err
		}
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return types.FallbackAbstract, nil
	}
	return strings.Join(parts, " "), nil
}

// authors renders each Author as "ForeName LastName". Entries naming a
// collective instead of a person use the collective name.
func authors(art any) ([]string, error) {
	node, err := xmltree.Path(art, "AuthorList", "Author")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, a := range xmltree.List(node) {
		fore, err := xmltree.TextAt(a, "ForeName")
		if err != nil {
			return nil, err
		}
		last, err := xmltree.TextAt(a, "LastName")
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(strings.TrimSpace(fore) + " " + strings.TrimSpace(last))
		if name == "" {
			collective, err := xmltree.TextAt(a, "CollectiveName")
			if err != nil {
				return nil, err
			}
			name = strings.TrimSpace(collective)
		}
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return []string{types.NotAvailable}, nil
	}
	return names, nil
}

// publicationYear prefers PubDate/Year and falls back to the free-text
// PubDate/MedlineDate (e.g. "1998 Dec-1999 Jan").
func publicationYear(art any) (string, error) {
	pubDate, err := xmltree.Path(art, "Journal", "JournalIssue", "PubDate")
	if err != nil {
		return "", err
	}
	year, err := textOr(pubDate, "", "Year")
	if err != nil {
		return "", err
	}
	if year != "" {
		return year, nil
	}
	return textOr(pubDate, types.NotAvailable, "MedlineDate")
}

// meshTerms collects the DescriptorName of every MeshHeading.
func meshTerms(medline any) ([]string, error) {
	node, err := xmltree.Path(medline, "MeshHeadingList", "MeshHeading")
	if err != nil {
		return nil, err
	}

	var terms []string
	for _, h := range xmltree.List(node) {
		d, err := textOr(h, "", "DescriptorName")
		if err != nil {
			return nil, err
		}
		if d != "" {
			terms = append(terms, d)
		}
	}
	if len(terms) == 0 {
		return []string{types.NotAvailable}, nil
	}
	return terms, nil
}
