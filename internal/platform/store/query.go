package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Query builds single-table statements with equality filters, ordering and
// limits. All values travel as bind parameters; only column and table names
// (which come from code, not input) are interpolated.
type Query struct {
	client *Client
	table  string
	conds  []cond
	order  string
	desc   bool
	limit  int
	offset int
}

type cond struct {
	column string
	value  any
}

func (q *Query) Eq(column string, value any) *Query {
	q.conds = append(q.conds, cond{column: column, value: value})
	return q
}

func (q *Query) Order(column string, desc bool) *Query {
	q.order = column
	q.desc = desc
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) Offset(n int) *Query {
	q.offset = n
	return q
}

func (q *Query) whereClause(sb *strings.Builder, args []any) []any {
	for i, c := range q.conds {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, c.value)
		fmt.Fprintf(sb, "%s = $%d", c.column, len(args))
	}
	return args
}

func (q *Query) selectSQL(columns ...string) (string, []any) {
	cols := "*"
	if len(columns) > 0 {
		cols = strings.Join(columns, ", ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", cols, q.table)
	args := q.whereClause(&sb, nil)

	if q.order != "" {
		fmt.Fprintf(&sb, " ORDER BY %s", q.order)
		if q.desc {
			sb.WriteString(" DESC")
		}
	}
	if q.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.limit)
	}
	if q.offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", q.offset)
	}

	return sb.String(), args
}

func (q *Query) Rows(ctx context.Context, columns ...string) (pgx.Rows, error) {
	sql, args := q.selectSQL(columns...)
	return q.client.pool.Query(ctx, sql, args...)
}

func (q *Query) Row(ctx context.Context, columns ...string) pgx.Row {
	sql, args := q.selectSQL(columns...)
	return q.client.pool.QueryRow(ctx, sql, args...)
}

func (q *Query) Count(ctx context.Context) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT COUNT(*) FROM %s", q.table)
	args := q.whereClause(&sb, nil)

	var n int64
	err := q.client.pool.QueryRow(ctx, sb.String(), args...).Scan(&n)
	return n, err
}

func (q *Query) insertSQL(values map[string]any, returning ...string) (string, []any) {
	// Sorted keys keep generated SQL deterministic.
	cols := make([]string, 0, len(values))
	for col := range values {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	args := make([]any, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	for _, col := range cols {
		args = append(args, values[col])
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		q.table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if len(returning) > 0 {
		sql += " RETURNING " + strings.Join(returning, ", ")
	}
	return sql, args
}

func (q *Query) Insert(ctx context.Context, values map[string]any) error {
	sql, args := q.insertSQL(values)
	_, err := q.client.pool.Exec(ctx, sql, args...)
	return err
}

// InsertRow inserts and scans the listed returning columns.
func (q *Query) InsertRow(ctx context.Context, values map[string]any, returning ...string) pgx.Row {
	sql, args := q.insertSQL(values, returning...)
	return q.client.pool.QueryRow(ctx, sql, args...)
}

func (q *Query) updateSQL(values map[string]any, returning ...string) (string, []any) {
	cols := make([]string, 0, len(values))
	for col := range values {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	var sb strings.Builder
	fmt.Fprintf(&sb, "UPDATE %s SET ", q.table)
	args := make([]any, 0, len(cols)+len(q.conds))
	for i, col := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		args = append(args, values[col])
		fmt.Fprintf(&sb, "%s = $%d", col, len(args))
	}
	args = q.whereClause(&sb, args)

	sql := sb.String()
	if len(returning) > 0 {
		sql += " RETURNING " + strings.Join(returning, ", ")
	}
	return sql, args
}

func (q *Query) Update(ctx context.Context, values map[string]any) (int64, error) {
	sql, args := q.updateSQL(values)
	tag, err := q.client.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// UpdateRow updates and scans the listed returning columns.
func (q *Query) UpdateRow(ctx context.Context, values map[string]any, returning ...string) pgx.Row {
	sql, args := q.updateSQL(values, returning...)
	return q.client.pool.QueryRow(ctx, sql, args...)
}

func (q *Query) Delete(ctx context.Context) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DELETE FROM %s", q.table)
	args := q.whereClause(&sb, nil)

	tag, err := q.client.pool.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
