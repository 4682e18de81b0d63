package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Filter matches rows whose columns equal the given values.
type Filter map[string]any

// Sort orders a find by one column.
type Sort struct {
	Column string
	Desc   bool
}

// docTable is a keyed JSON document table. Every repository in this
// package is a typed wrapper over findOne, upsert and find.
type docTable struct {
	db      *sql.DB
	q       querier
	dialect string
	name    string
	keys    []string
}

func (t docTable) conn() querier {
	if t.q != nil {
		return t.q
	}
	return t.db
}

// inTx runs fn against a copy of t bound to a single transaction.
func (t docTable) inTx(ctx context.Context, fn func(tx docTable) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	bound := t
	bound.q = tx
	if err := fn(bound); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// where builds an AND of equality predicates in stable column order.
func (t docTable) where(f Filter) *entsql.Predicate {
	if len(f) == 0 {
		return nil
	}
	cols := make([]string, 0, len(f))
	for c := range f {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	preds := make([]*entsql.Predicate, len(cols))
	for i, c := range cols {
		preds[i] = entsql.EQ(c, f[c])
	}
	if len(preds) == 1 {
		return preds[0]
	}
	return entsql.And(preds...)
}

// findOne decodes the document matching f into dst. It reports false when
// no row matches.
func (t docTable) findOne(ctx context.Context, f Filter, dst any) (bool, error) {
	found := false
	err := t.find(ctx, f, 1, Sort{}, func(data []byte) error {
		found = true
		return json.Unmarshal(data, dst)
	})
	return found, err
}

// find streams the JSON documents matching f to each. A zero limit means
// unlimited; a zero Sort falls back to insertion order.
func (t docTable) find(ctx context.Context, f Filter, limit int, s Sort, each func(data []byte) error) error {
	sel := entsql.Dialect(t.dialect).
		Select(ColData).
		From(entsql.Dialect(t.dialect).Table(t.name))
	if p := t.where(f); p != nil {
		sel.Where(p)
	}
	switch {
	case s.Column == "":
		sel.OrderBy(entsql.Asc(ColID))
	case s.Desc:
		sel.OrderBy(entsql.Desc(s.Column), entsql.Desc(ColID))
	default:
		sel.OrderBy(entsql.Asc(s.Column), entsql.Asc(ColID))
	}
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := t.conn().QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query %s: %w", t.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return fmt.Errorf("scan %s: %w", t.name, err)
		}
		if err := each(data); err != nil {
			return fmt.Errorf("decode %s: %w", t.name, err)
		}
	}
	return rows.Err()
}

// upsert writes doc under the key columns in cols, replacing any existing
// row for the same key in one statement.
func (t docTable) upsert(ctx context.Context, cols Filter, doc any, at time.Time) error {
	query, args, err := t.insertQuery(cols, doc, at, true)
	if err != nil {
		return err
	}
	if _, err := t.conn().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", t.name, err)
	}
	return nil
}

// insert appends doc; a key collision is an error.
func (t docTable) insert(ctx context.Context, cols Filter, doc any, at time.Time) error {
	query, args, err := t.insertQuery(cols, doc, at, false)
	if err != nil {
		return err
	}
	if _, err := t.conn().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", t.name, err)
	}
	return nil
}

func (t docTable) insertQuery(cols Filter, doc any, at time.Time, replace bool) (string, []any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", nil, fmt.Errorf("encode %s: %w", t.name, err)
	}

	names := make([]string, 0, len(cols)+2)
	for c := range cols {
		names = append(names, c)
	}
	sort.Strings(names)
	values := make([]any, 0, len(names)+2)
	for _, c := range names {
		values = append(values, cols[c])
	}
	names = append(names, ColData, ColUpdatedAt)
	values = append(values, string(data), at.UnixNano())

	ins := entsql.Dialect(t.dialect).
		Insert(t.name).
		Columns(names...).
		Values(values...)
	if replace {
		ins.OnConflict(
			entsql.ConflictColumns(t.keys...),
			entsql.ResolveWithNewValues(),
		)
	}
	query, args := ins.Query()
	return query, args, nil
}
