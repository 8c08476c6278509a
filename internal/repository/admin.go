package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invenhq/inventory-api/internal/model"
	"github.com/invenhq/inventory-api/internal/storage/db"
)

type AdminRepository interface {
	WithDB(db db.DB) AdminRepository
	Create(ctx context.Context, admin *model.Admin) error
	GetByID(ctx context.Context, id int64) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	Update(ctx context.Context, admin *model.Admin) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type adminRepository struct {
	db db.DB
}

func NewAdminRepository(db db.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r adminRepository) WithDB(db db.DB) AdminRepository {
	return &adminRepository{db: db}
}

const adminColumns = `id, first_name, last_name, email, birth_date, gender, password_hash, created_at, updated_at`

func (r adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO admins (first_name, last_name, email, birth_date, gender, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		admin.FirstName, admin.LastName, admin.Email, admin.BirthDate, admin.Gender, admin.PasswordHash,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

func (r adminRepository) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r adminRepository) getBy(ctx context.Context, where string, arg any) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.db.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins `+where, arg,
	).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.BirthDate, &a.Gender,
		&a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}

func (r adminRepository) List(ctx context.Context) ([]model.Admin, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+adminColumns+` FROM admins ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	admins := []model.Admin{}
	for rows.Next() {
		var a model.Admin
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.BirthDate,
			&a.Gender, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func (r adminRepository) Update(ctx context.Context, admin *model.Admin) error {
	err := r.db.QueryRow(ctx,
		`UPDATE admins
		 SET first_name = $2, last_name = $3, email = $4, birth_date = $5,
		     gender = $6, password_hash = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		admin.ID, admin.FirstName, admin.LastName, admin.Email, admin.BirthDate,
		admin.Gender, admin.PasswordHash,
	).Scan(&admin.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	return nil
}

func (r adminRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete admin: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
