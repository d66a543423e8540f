package project

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	kpool "github.com/rpatil524/mlrun/pkg/conn/db/postgres/pool"
	"github.com/rpatil524/mlrun/pkg/domain"
	kpjdb "github.com/rpatil524/mlrun/pkg/domain/project/db"
)

type pgProject struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kpjdb.Interface {
	return &pgProject{pool: pool}
}

func (p *pgProject) Find(
	ctx context.Context, q kpjdb.Query, bounds *domain.Bounds,
) ([]domain.ProjectSummary, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	where := []string{}
	args := []interface{}{}
	if q.Owner != "" {
		args = append(args, q.Owner)
		where = append(where, fmt.Sprintf(`"owner" = $%d`, len(args)))
	}
	if q.State != "" {
		args = append(args, string(q.State))
		where = append(where, fmt.Sprintf(`"state" = $%d`, len(args)))
	}
	if 0 < len(q.Labels) {
		labels, err := json.Marshal(q.Labels)
		if err != nil {
			return nil, err
		}
		args = append(args, labels)
		where = append(where, fmt.Sprintf(`"labels" @> $%d::jsonb`, len(args)))
	}

	sql := `
	select "name", coalesce("owner", ''), "state", "created_at", "updated_at"
	from "projects"
	`
	if 0 < len(where) {
		sql += " where " + strings.Join(where, " and ")
	}
	sql += ` order by "name"`
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

	found := []domain.ProjectSummary{}
	for rows.Next() {
		item := domain.ProjectSummary{}
		if err := rows.Scan(
			&item.Name, &item.Owner, &item.State, &item.CreatedAt, &item.UpdatedAt,
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
