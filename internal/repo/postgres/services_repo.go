package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vndigital/sitehub/internal/domain/service"
	"github.com/vndigital/sitehub/internal/observability"
)

type ServicesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewServicesRepo(pool *pgxpool.Pool, prom *observability.Prom) *ServicesRepo {
	return &ServicesRepo{pool: pool, prom: prom}
}

func (r *ServicesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *ServicesRepo) Create(ctx context.Context, req service.CreateServiceRequest) (service.Service, error) {
	s := service.Service{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
	}

	err := r.observe("services.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO services (title, description, icon) VALUES ($1, $2, $3) RETURNING id`,
			s.Title, s.Description, s.Icon,
		).Scan(&s.ID)
	})

	if err != nil {
		return service.Service{}, err
	}

	return s, nil
}

func (r *ServicesRepo) List(ctx context.Context) ([]service.Service, error) {
	var out []service.Service

	err := r.observe("services.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, title, description, icon FROM services ORDER BY id`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]service.Service, 0)

		for rows.Next() {
			var s service.Service

			err = rows.Scan(&s.ID, &s.Title, &s.Description, &s.Icon)

			if err != nil {
				return err
			}

			out = append(out, s)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ServicesRepo) GetByID(ctx context.Context, id int) (service.Service, error) {
	var s service.Service

	err := r.observe("services.get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, title, description, icon FROM services WHERE id = $1`, id,
		).Scan(&s.ID, &s.Title, &s.Description, &s.Icon)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.Service{}, service.ErrNotFound
		}

		return service.Service{}, err
	}

	return s, nil
}

func (r *ServicesRepo) Update(ctx context.Context, id int, req service.UpdateServiceRequest) (service.Service, error) {
	var s service.Service

	err := r.observe("services.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE services
				SET title = $2,
						description = $3,
						icon = $4
			WHERE id = $1
			RETURNING id, title, description, icon`,
			id, req.Title, req.Description, req.Icon,
		).Scan(&s.ID, &s.Title, &s.Description, &s.Icon)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.Service{}, service.ErrNotFound
		}

		return service.Service{}, err
	}

	return s, nil
}

func (r *ServicesRepo) Delete(ctx context.Context, id int) (bool, error) {
	var deleted bool

	err := r.observe("services.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)

		if err != nil {
			return err
		}

		deleted = tag.RowsAffected() > 0

		return nil
	})

	if err != nil {
		return false, err
	}

	return deleted, nil
}
