//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"time"

	"opmlkit/internal/model"
	"opmlkit/pkg/snowflake"
)

// FolderRepository defines the interface for folder storage.
type FolderRepository interface {
	Create(ctx context.Context, name string) (*model.Folder, error)
	GetByID(ctx context.Context, id int64) (*model.Folder, error)
	FindByName(ctx context.Context, name string) (*model.Folder, error)
	List(ctx context.Context) ([]model.Folder, error)
	Delete(ctx context.Context, id int64) error
}

type folderRepository struct {
	db *sql.DB
}

// NewFolderRepository creates a new folder repository.
func NewFolderRepository(db *sql.DB) FolderRepository {
	return &folderRepository{db: db}
}

// Create inserts a new folder.
func (r *folderRepository) Create(ctx context.Context, name string) (*model.Folder, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()
	nowStr := formatTime(now)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO folders (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, id, name, nowStr, nowStr)
	if err != nil {
		return nil, err
	}

	return &model.Folder{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetByID retrieves a folder by ID. Returns sql.ErrNoRows when it does not exist.
func (r *folderRepository) GetByID(ctx context.Context, id int64) (*model.Folder, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM folders WHERE id = ?
	`, id)
	return scanFolder(row)
}

// FindByName retrieves a folder by name. Returns nil without error when it does not exist.
func (r *folderRepository) FindByName(ctx context.Context, name string) (*model.Folder, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM folders WHERE name = ?
	`, name)
	folder, err := scanFolder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return folder, err
}

// List retrieves all folders ordered by name.
func (r *folderRepository) List(ctx context.Context) ([]model.Folder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM folders ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []model.Folder
	for rows.Next() {
		var f model.Folder
		var createdAt, updatedAt string
		if err := rows.Scan(&f.ID, &f.Name, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		f.CreatedAt, _ = parseTime(createdAt)
		f.UpdatedAt, _ = parseTime(updatedAt)
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// Delete removes a folder. Subscriptions in it fall back to ungrouped.
func (r *folderRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanFolder(row *sql.Row) (*model.Folder, error) {
	var f model.Folder
	var createdAt, updatedAt string
	if err := row.Scan(&f.ID, &f.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	f.CreatedAt, _ = parseTime(createdAt)
	f.UpdatedAt, _ = parseTime(updatedAt)
	return &f, nil
}
