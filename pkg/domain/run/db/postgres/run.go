package run

import (
	"context"
	"fmt"
	"strings"

	kpool "github.com/rpatil524/mlrun/pkg/conn/db/postgres/pool"
	"github.com/rpatil524/mlrun/pkg/domain"
	krundb "github.com/rpatil524/mlrun/pkg/domain/run/db"
)

type pgRun struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) krundb.Interface {
	return &pgRun{pool: pool}
}

func (r *pgRun) Find(
	ctx context.Context, q krundb.Query, bounds *domain.Bounds,
) ([]domain.RunSummary, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	where := []string{}
	args := []interface{}{}
	if q.Project != "" {
		args = append(args, q.Project)
		where = append(where, fmt.Sprintf(`"project" = $%d`, len(args)))
	}
	if q.Name != "" {
		args = append(args, q.Name)
		where = append(where, fmt.Sprintf(`"name" = $%d`, len(args)))
	}
	if q.State != "" {
		args = append(args, string(q.State))
		where = append(where, fmt.Sprintf(`"state" = $%d`, len(args)))
	}

	sql := `
	select "uid", "project", "name", "state", "started_at", "updated_at"
	from "runs"
	`
	if 0 < len(where) {
		sql += " where " + strings.Join(where, " and ")
	}
	sql += ` order by "started_at" desc, "uid"`
	if bounds != nil {
		args = append(args, bounds.Limit)
		sql += fmt.Sprintf(` limit $%d`, len(args))
		args = append(args, bounds.Offset)
		sql += fmt.Sprintf(` offset $%d`, len(args))
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := []domain.RunSummary{}
	for rows.Next() {
		item := domain.RunSummary{}
		if err := rows.Scan(
			&item.Uid, &item.Project, &item.Name, &item.State,
			&item.StartedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		found = append(found, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return found, nil
}
