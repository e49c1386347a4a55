package category

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/finanzapp/finanzapp/internal/database"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Category, error)
	// FindByName looks up an exact name match.
	FindByName(ctx context.Context, name string) (Category, bool, error)
	Store(ctx context.Context, category Category) (int, error)
	Update(ctx context.Context, category Category) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *database.DB
}

func NewRepository(db *database.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = "SELECT id, name, color, icon, is_default, created_at, updated_at FROM categories"

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+" ORDER BY id")
	if err != nil {
		err := database.StorageError("could not query categories", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			err := database.StorageError("could not scan category", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		err := database.StorageError("error iterating over categories", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (r *RepositoryImpl) FindByName(ctx context.Context, name string) (Category, bool, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(selectColumns+" WHERE name = ?"), name)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, false, nil
	}
	if err != nil {
		err := database.StorageError("could not find category", err)
		log.Error(err)
		return Category{}, false, err
	}
	return c, true, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, category Category) (int, error) {
	query := `INSERT INTO categories (name, color, icon, is_default, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query),
		category.Name,
		category.Color,
		category.Icon,
		category.IsDefault,
		category.CreatedAt.UnixMilli(),
		category.UpdatedAt.UnixMilli(),
	).Scan(&id)
	if err != nil {
		err := database.StorageError("could not store category", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, category Category) (bool, error) {
	query := "UPDATE categories SET name = ?, color = ?, icon = ?, updated_at = ? WHERE id = ?"
	stmt, err := r.db.PrepareContext(ctx, r.db.Rebind(query))
	if err != nil {
		err := database.StorageError("could not prepare query", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		category.Name,
		category.Color,
		category.Icon,
		category.UpdatedAt.UnixMilli(),
		category.ID,
	)
	if err != nil {
		err := database.StorageError("could not update category", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected(result)
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	stmt, err := r.db.PrepareContext(ctx, r.db.Rebind("DELETE FROM categories WHERE id = ?"))
	if err != nil {
		err := database.StorageError("could not prepare query", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		err := database.StorageError("could not delete category", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected(result)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(s scanner) (Category, error) {
	var c Category
	var createdAt, updatedAt int64
	if err := s.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.IsDefault, &createdAt, &updatedAt); err != nil {
		return Category{}, err
	}
	c.CreatedAt = time.UnixMilli(createdAt).UTC()
	c.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return c, nil
}

func rowsAffected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		err := database.StorageError("could not get rows affected", err)
		log.Error(err)
		return false, err
	}
	return n == 1, nil
}
