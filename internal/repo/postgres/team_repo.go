package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vndigital/sitehub/internal/domain/team"
	"github.com/vndigital/sitehub/internal/observability"
)

type TeamRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewTeamRepo(pool *pgxpool.Pool, prom *observability.Prom) *TeamRepo {
	return &TeamRepo{pool: pool, prom: prom}
}

func (r *TeamRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *TeamRepo) Create(ctx context.Context, req team.CreateMemberRequest) (team.Member, error) {
	m := team.Member{
		Name:  req.Name,
		Role:  req.Role,
		Image: req.Image,
	}

	err := r.observe("team.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO team (name, role, image) VALUES ($1, $2, $3) RETURNING id`,
			m.Name, m.Role, m.Image,
		).Scan(&m.ID)
	})

	if err != nil {
		return team.Member{}, err
	}

	return m, nil
}

func (r *TeamRepo) List(ctx context.Context) ([]team.Member, error) {
	var out []team.Member

	err := r.observe("team.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, name, role, image FROM team ORDER BY id`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]team.Member, 0)

		for rows.Next() {
			var m team.Member

			err = rows.Scan(&m.ID, &m.Name, &m.Role, &m.Image)

			if err != nil {
				return err
			}

			out = append(out, m)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *TeamRepo) GetByID(ctx context.Context, id int) (team.Member, error) {
	var m team.Member

	err := r.observe("team.get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, name, role, image FROM team WHERE id = $1`, id,
		).Scan(&m.ID, &m.Name, &m.Role, &m.Image)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Member{}, team.ErrNotFound
		}

		return team.Member{}, err
	}

	return m, nil
}

func (r *TeamRepo) Update(ctx context.Context, id int, req team.UpdateMemberRequest) (team.Member, error) {
	var m team.Member

	err := r.observe("team.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE team
				SET name = $2,
						role = $3,
						image = $4
			WHERE id = $1
			RETURNING id, name, role, image`,
			id, req.Name, req.Role, req.Image,
		).Scan(&m.ID, &m.Name, &m.Role, &m.Image)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Member{}, team.ErrNotFound
		}

		return team.Member{}, err
	}

	return m, nil
}

func (r *TeamRepo) Delete(ctx context.Context, id int) (bool, error) {
	var deleted bool

	err := r.observe("team.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM team WHERE id = $1`, id)

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
