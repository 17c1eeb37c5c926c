// AngelaMos | 2026
// cascade.go

package ownership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jmoiron/sqlx"

	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/metrics"
)

// Result holds the number of rows removed per table.
type Result map[string]int64

func (r Result) Total() int64 {
	var n int64
	for _, c := range r {
		n += c
	}
	return n
}

// Cascade deletes the row id of table and every row that transitively
// belongs to it. It must run inside a transaction owned by the caller; any
// error leaves the caller responsible for rolling back.
func (g Graph) Cascade(
	ctx context.Context,
	tx core.DBTX,
	table string,
	id int64,
) (Result, error) {
	order, err := g.Order(table)
	if err != nil {
		return nil, err
	}

	var locked int64
	lockQuery := tx.Rebind(fmt.Sprintf(
		"SELECT id FROM %s WHERE id = ? FOR UPDATE", table))
	err = tx.GetContext(ctx, &locked, lockQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cascade %s %d: %w", table, id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("cascade %s %d: lock root: %w: %w", table, id, core.ErrTransaction, err)
	}

	collected := map[string][]int64{table: {id}}

	for _, parent := range order {
		ids := collected[parent]
		if len(ids) == 0 {
			continue
		}

		for _, e := range g.children(parent) {
			childIDs, err := selectChildIDs(ctx, tx, e, ids)
			if err != nil {
				return nil, err
			}
			for _, cid := range childIDs {
				if !slices.Contains(collected[e.Child], cid) {
					collected[e.Child] = append(collected[e.Child], cid)
				}
			}
		}
	}

	result := Result{}
	for _, t := range slices.Backward(order) {
		ids := collected[t]
		if len(ids) == 0 {
			result[t] = 0
			continue
		}

		n, err := deleteIDs(ctx, tx, t, ids)
		if err != nil {
			return nil, err
		}
		result[t] = n
	}

	return result, nil
}

func selectChildIDs(
	ctx context.Context,
	tx core.DBTX,
	e Edge,
	parentIDs []int64,
) ([]int64, error) {
	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT id FROM %s WHERE %s IN (?) ORDER BY id", e.Child, e.Column),
		parentIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("build %s lookup: %w", e.Child, err)
	}

	var ids []int64
	if err := tx.SelectContext(ctx, &ids, tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("collect %s by %s: %w: %w", e.Child, e.Column, core.ErrTransaction, err)
	}
	return ids, nil
}

func deleteIDs(
	ctx context.Context,
	tx core.DBTX,
	table string,
	ids []int64,
) (int64, error) {
	query, args, err := sqlx.In(
		fmt.Sprintf("DELETE FROM %s WHERE id IN (?)", table),
		ids,
	)
	if err != nil {
		return 0, fmt.Errorf("build %s delete: %w", table, err)
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w: %w", table, core.ErrTransaction, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", table, err)
	}
	return n, nil
}

// Remover runs cascades in their own transaction.
type Remover struct {
	graph Graph
	db    core.TxBeginner
}

func NewRemover(db core.TxBeginner, graph Graph) *Remover {
	return &Remover{graph: graph, db: db}
}

// Delete removes the row and its dependents atomically. Either every row is
// gone or none is.
func (r *Remover) Delete(
	ctx context.Context,
	table string,
	id int64,
) (Result, error) {
	if !r.graph.Knows(table) {
		return nil, fmt.Errorf("cascade: table %q is not in the ownership graph", table)
	}

	var result Result
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		result, err = r.graph.Cascade(ctx, tx, table, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCascade(result)
	slog.InfoContext(ctx, "cascade delete",
		"table", table,
		"id", id,
		"rows", result.Total(),
	)
	return result, nil
}
