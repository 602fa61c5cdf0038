package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
)

const uniqueViolation = "23505"

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (name, email, phone, password_hash, group_id, employee_group_id, oauth_provider, active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
                   RETURNING id, created_at, updated_at`
	created := *user
	err := r.storage.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.Phone, user.PasswordHash,
		user.GroupID, user.EmployeeGroupID, user.OAuthProvider,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	created.Active = true
	return &created, nil
}

const userColumns = `id, name, email, phone, password_hash, group_id, employee_group_id, oauth_provider, active, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash,
		&u.GroupID, &u.EmployeeGroupID, &u.OAuthProvider, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, name, phone string) error {
	const query = `UPDATE users SET name=$1, phone=$2, updated_at=NOW() WHERE id=$3`
	return r.execExpectingRow(ctx, query, name, phone, id)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`
	return r.execExpectingRow(ctx, query, passwordHash, id)
}

func (r *userRepository) SetActive(ctx context.Context, id int64, active bool) error {
	const query = `UPDATE users SET active=$1, updated_at=NOW() WHERE id=$2`
	return r.execExpectingRow(ctx, query, active, id)
}

func (r *userRepository) SetOAuthProvider(ctx context.Context, id int64, provider string) error {
	const query = `UPDATE users SET oauth_provider=$1, updated_at=NOW() WHERE id=$2`
	return r.execExpectingRow(ctx, query, provider, id)
}

func (r *userRepository) SetEmployeeGroup(ctx context.Context, id int64, groupID *int64) error {
	const query = `UPDATE users SET employee_group_id=$1, group_id=$2, updated_at=NOW() WHERE id=$3`
	group := model.GroupCustomer
	if groupID != nil {
		group = model.GroupEmployee
	}
	return r.execExpectingRow(ctx, query, groupID, group, id)
}

func (r *userRepository) ListByGroup(ctx context.Context, group model.Group, limit, offset int) ([]model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE group_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.storage.pool.Query(ctx, query, group, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash,
			&u.GroupID, &u.EmployeeGroupID, &u.OAuthProvider, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- AddressRepository implementation ---

func (r *addressRepository) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	const query = `INSERT INTO addresses (user_id, label, street, number, complement, district, city, state, zip_code, is_default)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                   RETURNING id, created_at`
	created := *address
	err := r.storage.pool.QueryRow(ctx, query,
		address.UserID, address.Label, address.Street, address.Number, address.Complement,
		address.District, address.City, address.State, address.ZipCode, address.Default,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *addressRepository) Update(ctx context.Context, address *model.Address) error {
	const query = `UPDATE addresses SET label=$1, street=$2, number=$3, complement=$4, district=$5,
                   city=$6, state=$7, zip_code=$8, is_default=$9
                   WHERE id=$10 AND user_id=$11`
	tag, err := r.storage.pool.Exec(ctx, query,
		address.Label, address.Street, address.Number, address.Complement, address.District,
		address.City, address.State, address.ZipCode, address.Default,
		address.ID, address.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *addressRepository) Delete(ctx context.Context, userID, id int64) error {
	const query = `DELETE FROM addresses WHERE id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

const addressColumns = `id, user_id, label, street, number, complement, district, city, state, zip_code, is_default, created_at`

func (r *addressRepository) GetByID(ctx context.Context, userID, id int64) (*model.Address, error) {
	const query = `SELECT ` + addressColumns + ` FROM addresses WHERE id=$1 AND user_id=$2`
	var a model.Address
	err := r.storage.pool.QueryRow(ctx, query, id, userID).Scan(
		&a.ID, &a.UserID, &a.Label, &a.Street, &a.Number, &a.Complement,
		&a.District, &a.City, &a.State, &a.ZipCode, &a.Default, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	const query = `SELECT ` + addressColumns + ` FROM addresses WHERE user_id=$1 ORDER BY is_default DESC, created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Address
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.Street, &a.Number, &a.Complement,
			&a.District, &a.City, &a.State, &a.ZipCode, &a.Default, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
