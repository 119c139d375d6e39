package index

import (
	"context"
	"fmt"
	"strings"
)

// SearchResult pairs a matching record with a highlighted snippet taken
// from whichever indexed field matched best.
type SearchResult struct {
	Record  *Record
	Snippet string
}

const defaultSearchLimit = 20

// Search runs a ranked full-text query over titles, channels, descriptions
// and transcript bodies. The query is treated as literal words, not FTS5
// operator syntax.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+prefixedRecordColumns+`,
            snippet(transcripts_fts, -1, '>>> ', ' <<<', '...', 32)
         FROM transcripts_fts
         JOIN transcripts t ON t.id = transcripts_fts.rowid
         WHERE transcripts_fts MATCH ?
         ORDER BY rank
         LIMIT ?`,
		escapeMatchQuery(query), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search transcripts: %w", err)
	}
	defer rows.Close()

	var results []*SearchResult
	for rows.Next() {
		res, err := scanSearchResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

var prefixedRecordColumns = "t." + strings.ReplaceAll(recordColumns, ", ", ", t.")

// escapeMatchQuery quotes each whitespace-separated token so punctuation
// in user input cannot be parsed as FTS5 syntax. Embedded double quotes
// are doubled per SQL string rules.
func escapeMatchQuery(query string) string {
	fields := strings.Fields(query)
	quoted := make([]string, 0, len(fields))
	for _, field := range fields {
		quoted = append(quoted, `"`+strings.ReplaceAll(field, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}

func scanSearchResult(scanner interface{ Scan(dest ...any) error }) (*SearchResult, error) {
	collector := &snippetScanner{inner: scanner}
	rec, err := scanRecord(collector)
	if err != nil {
		return nil, fmt.Errorf("scan search result: %w", err)
	}
	return &SearchResult{Record: rec, Snippet: collector.snippet}, nil
}

// snippetScanner appends the snippet column to whatever scanRecord asks
// for, so record scanning stays in one place.
type snippetScanner struct {
	inner   interface{ Scan(dest ...any) error }
	snippet string
}

func (c *snippetScanner) Scan(dest ...any) error {
	return c.inner.Scan(append(dest, &c.snippet)...)
}
