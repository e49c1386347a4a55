package budget

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/finanzapp/finanzapp/internal/database"
	"github.com/finanzapp/finanzapp/internal/types"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Budget, error)
	FindByCategoryAndPeriod(ctx context.Context, category string, period types.Period) (Budget, bool, error)
	// Store stores a new Budget to the database
	Store(ctx context.Context, budget Budget) (int, error)
	Update(ctx context.Context, budget Budget) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *database.DB
}

func NewRepository(db *database.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = "SELECT id, category, amount, month, year, created_at, updated_at FROM budgets"

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Budget, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+" ORDER BY id")
	if err != nil {
		err := database.StorageError("could not query budgets", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	budgets := make([]Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			err := database.StorageError("could not scan budget", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		err := database.StorageError("error iterating over budgets", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (r *RepositoryImpl) FindByCategoryAndPeriod(ctx context.Context, category string, period types.Period) (Budget, bool, error) {
	query := selectColumns + " WHERE category = ? AND month = ? AND year = ?"
	row := r.db.QueryRowContext(ctx, r.db.Rebind(query), category, period.Month, period.Year)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Budget{}, false, nil
	}
	if err != nil {
		err := database.StorageError("could not find budget", err)
		log.Error(err)
		return Budget{}, false, err
	}
	return b, true, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, budget Budget) (int, error) {
	query := `INSERT INTO budgets (category, amount, month, year, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query),
		budget.Category,
		budget.Amount,
		budget.Month,
		budget.Year,
		budget.CreatedAt.UnixMilli(),
		budget.UpdatedAt.UnixMilli(),
	).Scan(&id)
	if err != nil {
		err := database.StorageError("could not store budget", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, budget Budget) (bool, error) {
	query := `UPDATE budgets SET
                  category = ?,
                  amount = ?,
                  month = ?,
                  year = ?,
                  updated_at = ?
              WHERE id = ?`
	stmt, err := r.db.PrepareContext(ctx, r.db.Rebind(query))
	if err != nil {
		err := database.StorageError("could not prepare query", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		budget.Category,
		budget.Amount,
		budget.Month,
		budget.Year,
		budget.UpdatedAt.UnixMilli(),
		budget.ID,
	)
	if err != nil {
		err := database.StorageError("could not update budget", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := database.StorageError("could not get rows affected", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	stmt, err := r.db.PrepareContext(ctx, r.db.Rebind("DELETE FROM budgets WHERE id = ?"))
	if err != nil {
		err := database.StorageError("could not prepare query", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()
	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		err := database.StorageError("could not delete budget", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := database.StorageError("could not get rows affected", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBudget(s scanner) (Budget, error) {
	var b Budget
	var createdAt, updatedAt int64
	if err := s.Scan(&b.ID, &b.Category, &b.Amount, &b.Month, &b.Year, &createdAt, &updatedAt); err != nil {
		return Budget{}, err
	}
	b.CreatedAt = time.UnixMilli(createdAt).UTC()
	b.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return b, nil
}
