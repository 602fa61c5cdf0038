package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
)

// --- GroupRepository implementation ---

func (r *groupRepository) Create(ctx context.Context, group *model.EmployeeGroup) (*model.EmployeeGroup, error) {
	created := *group
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertGroup = `INSERT INTO employee_groups (name, description) VALUES ($1, $2) RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insertGroup, group.Name, group.Description).Scan(&created.ID, &created.CreatedAt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		return insertPermissions(ctx, tx, created.ID, group.Permissions)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func insertPermissions(ctx context.Context, tx pgx.Tx, groupID int64, permissions []model.Permission) error {
	const insert = `INSERT INTO employee_group_permissions (group_id, module, can_view, can_create, can_edit, can_delete, can_export)
                    VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, p := range permissions {
		if _, err := tx.Exec(ctx, insert, groupID, p.Module, p.CanView, p.CanCreate, p.CanEdit, p.CanDelete, p.CanExport); err != nil {
			return err
		}
	}
	return nil
}

// Update rewrites the group row and replaces its permission set.
func (r *groupRepository) Update(ctx context.Context, group *model.EmployeeGroup) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateGroup = `UPDATE employee_groups SET name=$1, description=$2 WHERE id=$3`
		tag, err := tx.Exec(ctx, updateGroup, group.Name, group.Description, group.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM employee_group_permissions WHERE group_id=$1`, group.ID); err != nil {
			return err
		}
		return insertPermissions(ctx, tx, group.ID, group.Permissions)
	})
}

func (r *groupRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM employee_groups WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *groupRepository) loadPermissions(ctx context.Context, groupID int64) ([]model.Permission, error) {
	const query = `SELECT module, can_view, can_create, can_edit, can_delete, can_export
                   FROM employee_group_permissions WHERE group_id=$1 ORDER BY module`
	rows, err := r.storage.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []model.Permission
	for rows.Next() {
		var p model.Permission
		if err := rows.Scan(&p.Module, &p.CanView, &p.CanCreate, &p.CanEdit, &p.CanDelete, &p.CanExport); err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return permissions, nil
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (*model.EmployeeGroup, error) {
	const query = `SELECT id, name, description, created_at FROM employee_groups WHERE id=$1`
	var g model.EmployeeGroup
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	permissions, err := r.loadPermissions(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.Permissions = permissions
	return &g, nil
}

func (r *groupRepository) List(ctx context.Context) ([]model.EmployeeGroup, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT id, name, description, created_at FROM employee_groups ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []model.EmployeeGroup
	for rows.Next() {
		var g model.EmployeeGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		permissions, err := r.loadPermissions(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Permissions = permissions
	}
	return groups, nil
}

// --- AccessLogRepository implementation ---

func (r *accessLogRepository) Append(ctx context.Context, entry *model.AccessLogEntry) error {
	const query = `INSERT INTO employee_access_log (employee_id, module, action, detail) VALUES ($1, $2, $3, $4)`
	_, err := r.storage.pool.Exec(ctx, query, entry.EmployeeID, entry.Module, entry.Action, entry.Detail)
	return err
}

func (r *accessLogRepository) List(ctx context.Context, filter model.AccessLogFilter) ([]model.AccessLogEntry, error) {
	query := `SELECT id, employee_id, module, action, detail, created_at FROM employee_access_log`
	var conditions []string
	var args []any

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.Module != nil {
		args = append(args, *filter.Module)
		conditions = append(conditions, fmt.Sprintf("module = $%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.AccessLogEntry
	for rows.Next() {
		var e model.AccessLogEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Module, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
