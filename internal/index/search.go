// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"fmt"
	"strings"

	"github.com/jeranaias/rigscribe/internal/entry"
)

// =============================================================================
// SEARCH RESULT
// =============================================================================

// SearchResult is a single full-text match within a transcript.
type SearchResult struct {
	TranscriptID string
	Title        string
	Seq          int
	Kind         entry.Kind
	Snippet      string  // Matching excerpt with [] markers around hits
	Rank         float64 // Search relevance rank (more negative = better in FTS5)
}

// SearchOptions configures search behavior
type SearchOptions struct {
	// MaxResults limits the number of results (0 = unlimited)
	MaxResults int

	// Kinds filters by entry kind (empty = all kinds)
	Kinds []entry.Kind

	// TranscriptID limits results to a single transcript
	TranscriptID string
}

// DefaultSearchOptions returns default search options
func DefaultSearchOptions() *SearchOptions {
	return &SearchOptions{
		MaxResults: 50,
	}
}

// =============================================================================
// SEARCH METHODS
// =============================================================================

// Search finds transcript entries matching the query using full-text search.
func (idx *TranscriptIndex) Search(query string, options *SearchOptions) ([]SearchResult, error) {
	if !idx.IsIndexed() {
		return nil, ErrNotIndexed
	}

	if options == nil {
		options = DefaultSearchOptions()
	}

	ftsQuery := buildFTSQuery(query)
	if ftsQuery == "" {
		return []SearchResult{}, nil
	}

	sqlQuery := `
		SELECT
			e.transcript_id, t.title, e.seq, e.kind,
			snippet(entries_fts, 0, '[', ']', '...', 12),
			entries_fts.rank
		FROM entries_fts
		JOIN entries e ON e.id = entries_fts.rowid
		JOIN transcripts t ON t.id = e.transcript_id
		WHERE entries_fts MATCH ?
	`

	args := []interface{}{ftsQuery}

	var conditions []string

	if len(options.Kinds) > 0 {
		placeholders := make([]string, len(options.Kinds))
		for i, k := range options.Kinds {
			placeholders[i] = "?"
			args = append(args, string(k))
		}
		conditions = append(conditions, "e.kind IN ("+strings.Join(placeholders, ",")+")")
	}

	if options.TranscriptID != "" {
		conditions = append(conditions, "e.transcript_id = ?")
		args = append(args, options.TranscriptID)
	}

	if len(conditions) > 0 {
		sqlQuery += " AND " + strings.Join(conditions, " AND ")
	}

	sqlQuery += " ORDER BY entries_fts.rank"

	if options.MaxResults > 0 {
		sqlQuery += " LIMIT ?"
		args = append(args, options.MaxResults)
	}

	rows, err := idx.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var kind string
		if err := rows.Scan(&r.TranscriptID, &r.Title, &r.Seq, &kind, &r.Snippet, &r.Rank); err != nil {
			continue
		}
		r.Kind = entry.Kind(kind)
		results = append(results, r)
	}

	return results, rows.Err()
}

// SearchTranscripts returns the distinct transcripts matching the query,
// best match first.
func (idx *TranscriptIndex) SearchTranscripts(query string, maxResults int) ([]SearchResult, error) {
	if !idx.IsIndexed() {
		return nil, ErrNotIndexed
	}

	ftsQuery := buildFTSQuery(query)
	if ftsQuery == "" {
		return []SearchResult{}, nil
	}

	// snippet() is only legal on a plain FTS row, not in an aggregate, so
	// rank and snippet are computed per match in the inner query and the
	// outer query keeps each transcript's best row. The LIMIT -1 stops the
	// query flattener from merging the subquery into the aggregate, which
	// would put snippet() back in an illegal context.
	sqlQuery := `
		SELECT transcript_id, title, seq, kind, snip, MIN(rank)
		FROM (
			SELECT
				e.transcript_id AS transcript_id,
				t.title AS title,
				e.seq AS seq,
				e.kind AS kind,
				snippet(entries_fts, 0, '[', ']', '...', 12) AS snip,
				entries_fts.rank AS rank
			FROM entries_fts
			JOIN entries e ON e.id = entries_fts.rowid
			JOIN transcripts t ON t.id = e.transcript_id
			WHERE entries_fts MATCH ?
			LIMIT -1
		)
		GROUP BY transcript_id
		ORDER BY MIN(rank)
	`

	args := []interface{}{ftsQuery}
	if maxResults > 0 {
		sqlQuery += " LIMIT ?"
		args = append(args, maxResults)
	}

	rows, err := idx.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var kind string
		if err := rows.Scan(&r.TranscriptID, &r.Title, &r.Seq, &kind, &r.Snippet, &r.Rank); err != nil {
			continue
		}
		r.Kind = entry.Kind(kind)
		results = append(results, r)
	}

	return results, rows.Err()
}

// buildFTSQuery converts a user query into an FTS5 MATCH expression.
// Each term becomes a quoted prefix match so partial words still hit.
func buildFTSQuery(query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return ""
	}

	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		// Quotes inside a term would break the FTS expression
		term = strings.ReplaceAll(term, `"`, "")
		if term == "" {
			continue
		}
		quoted = append(quoted, `"`+term+`"*`)
	}

	return strings.Join(quoted, " ")
}
