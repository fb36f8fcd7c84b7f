package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vndigital/sitehub/internal/domain/contact"
	"github.com/vndigital/sitehub/internal/observability"
)

// Contacts are append-only: submissions are never updated or deleted.
type ContactsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewContactsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ContactsRepo {
	return &ContactsRepo{pool: pool, prom: prom}
}

func (r *ContactsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *ContactsRepo) Create(ctx context.Context, req contact.CreateContactRequest) (contact.Contact, error) {
	c := contact.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	err := r.observe("contacts.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO contacts (name, email, message) VALUES ($1, $2, $3) RETURNING id`,
			c.Name, c.Email, c.Message,
		).Scan(&c.ID)
	})

	if err != nil {
		return contact.Contact{}, err
	}

	return c, nil
}

func (r *ContactsRepo) List(ctx context.Context) ([]contact.Contact, error) {
	var out []contact.Contact

	err := r.observe("contacts.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, name, email, message FROM contacts ORDER BY id`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]contact.Contact, 0)

		for rows.Next() {
			var c contact.Contact

			err = rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message)

			if err != nil {
				return err
			}

			out = append(out, c)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ContactsRepo) GetByID(ctx context.Context, id int) (contact.Contact, error) {
	var c contact.Contact

	err := r.observe("contacts.get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, name, email, message FROM contacts WHERE id = $1`, id,
		).Scan(&c.ID, &c.Name, &c.Email, &c.Message)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contact.Contact{}, contact.ErrNotFound
		}

		return contact.Contact{}, err
	}

	return c, nil
}
