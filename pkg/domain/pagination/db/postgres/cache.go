package pagination

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/rpatil524/mlrun/pkg/conn/db/postgres/pool"
	"github.com/rpatil524/mlrun/pkg/domain"
	kerr "github.com/rpatil524/mlrun/pkg/domain/errors"
	kpgndb "github.com/rpatil524/mlrun/pkg/domain/pagination/db"
)

type pgCache struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kpgndb.Interface {
	return &pgCache{pool: pool}
}

// Ensure creates the pagination cache table when it does not exist yet.
func Ensure(ctx context.Context, pool kpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(
		ctx,
		`
		create table if not exists "pagination_cache" (
			"token" varchar(36) primary key,
			"user" varchar(255),
			"function" varchar(255) not null,
			"current_page" integer not null,
			"page_size" integer not null,
			"kwargs" jsonb not null,
			"last_accessed" timestamp with time zone not null default now()
		);
		create index if not exists "idx_pagination_cache_last_accessed"
			on "pagination_cache" ("last_accessed");
		`,
	)
	return err
}

func (c *pgCache) Create(
	ctx context.Context,
	user string, method string, page int, pageSize int, kwargs json.RawMessage,
) (string, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	// uuid collisions are not expected, but a duplicate insert is cheap
	// to detect. retry with a fresh token instead of failing the request.
	for {
		token := uuid.NewString()
		_, err := conn.Exec(
			ctx,
			`
			insert into "pagination_cache"
				("token", "user", "function", "current_page", "page_size", "kwargs")
			values ($1, nullif($2, ''), $3, $4, $5, $6)
			`,
			token, user, method, page, pageSize, kwargs,
		)
		if err == nil {
			return token, nil
		}
		if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) &&
			pgerr.Code == pgerrcode.UniqueViolation {
			continue
		}
		return "", err
	}
}

func (c *pgCache) Get(ctx context.Context, token string) (*domain.PaginationRecord, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	record := domain.PaginationRecord{}
	var kwargs []byte
	if err := conn.QueryRow(
		ctx,
		`
		select
			"token", coalesce("user", ''), "function",
			"current_page", "page_size", "kwargs", "last_accessed"
		from "pagination_cache"
		where "token" = $1
		`,
		token,
	).Scan(
		&record.Token, &record.User, &record.Method,
		&record.CurrentPage, &record.PageSize, &kwargs, &record.LastAccessed,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kerr.Missing{Table: "pagination_cache", Identity: token}
		}
		return nil, err
	}
	record.Kwargs = kwargs
	return &record, nil
}

func (c *pgCache) Update(
	ctx context.Context, token string, page int, pageSize int, user string,
) error {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		update "pagination_cache"
		set
			"current_page" = $2,
			"page_size" = $3,
			"user" = nullif($4, ''),
			"last_accessed" = now()
		where "token" = $1
		`,
		token, page, pageSize, user,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kerr.Missing{Table: "pagination_cache", Identity: token}
	}
	return nil
}

func (c *pgCache) DeleteStale(ctx context.Context, ttl time.Duration) (int, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`delete from "pagination_cache" where "last_accessed" < $1`,
		time.Now().Add(-ttl),
	)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (c *pgCache) TrimToSize(ctx context.Context, max int) (int, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		with "keep" as (
			select "token" from "pagination_cache"
			order by "last_accessed" desc
			limit $1
		)
		delete from "pagination_cache"
		where "token" not in (select "token" from "keep")
		`,
		max,
	)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (c *pgCache) List(ctx context.Context) ([]domain.PaginationRecord, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select
			"token", coalesce("user", ''), "function",
			"current_page", "page_size", "kwargs", "last_accessed"
		from "pagination_cache"
		order by "last_accessed"
		`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.PaginationRecord{}
	for rows.Next() {
		record := domain.PaginationRecord{}
		var kwargs []byte
		if err := rows.Scan(
			&record.Token, &record.User, &record.Method,
			&record.CurrentPage, &record.PageSize, &kwargs, &record.LastAccessed,
		); err != nil {
			return nil, err
		}
		record.Kwargs = kwargs
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
