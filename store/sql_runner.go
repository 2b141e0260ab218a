package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// maxDigestRecords caps how many records the prompt digest renders.
const maxDigestRecords = 5

// SQLRunner executes a read-only query and returns its rows. The SQL agent
// enforces the SELECT-only policy before calling Run; implementations do not
// need to re-check.
type SQLRunner interface {
	Run(ctx context.Context, query string) ([]map[string]any, error)
}

// PgRunner executes queries against the shop database over a pgx pool.
// Connections are acquired per call and released by pgx when rows close.
type PgRunner struct {
	pool *pgxpool.Pool
}

func NewPgRunner(pool *pgxpool.Pool) *PgRunner {
	return &PgRunner{pool: pool}
}

func (r *PgRunner) Run(ctx context.Context, query string) ([]map[string]any, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()

	var out []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		record := make(map[string]any, len(fields))
		for i, fd := range fields {
			record[fd.Name] = values[i]
		}
		out = append(out, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FormatRows renders a row set into the bounded textual digest fed to the
// language model: at most maxDigestRecords records, each as field: value
// lines with fields in stable order.
func FormatRows(rows []map[string]any) string {
	if len(rows) == 0 {
		return "No matching records found"
	}

	if len(rows) == 1 {
		return formatRecord(rows[0])
	}

	shown := rows
	if len(shown) > maxDigestRecords {
		shown = shown[:maxDigestRecords]
	}

	parts := make([]string, 0, len(shown))
	for i, row := range shown {
		parts = append(parts, fmt.Sprintf("Record %d:\n%s", i+1, formatRecord(row)))
	}
	return strings.Join(parts, "\n\n")
}

func formatRecord(row map[string]any) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, row[k]))
	}
	return strings.Join(lines, "\n")
}
