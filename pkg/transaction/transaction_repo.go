package transaction

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/finanzapp/finanzapp/internal/database"
	"github.com/finanzapp/finanzapp/internal/types"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Transaction, error)
	Find(ctx context.Context, criteria Criteria) ([]Transaction, error)
	Store(ctx context.Context, transaction Transaction) (int, error)
	Update(ctx context.Context, transaction Transaction) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	// DeleteByCategory removes every transaction referencing the category name
	// and returns how many were removed.
	DeleteByCategory(ctx context.Context, category string) (int, error)
}

// Criteria narrows a Find. Zero values do not filter. From and To are inclusive.
type Criteria struct {
	Category string
	Kind     Kind
	Period   *types.Period
	From     types.Date
	To       types.Date
}

func (c Criteria) Matches(t Transaction) bool {
	if c.Category != "" && t.Category != c.Category {
		return false
	}
	if c.Kind != "" && t.EffectiveKind() != c.Kind {
		return false
	}
	if c.Period != nil && !t.InPeriod(*c.Period) {
		return false
	}
	if !c.From.IsZero() && t.Date.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && t.Date.After(c.To) {
		return false
	}
	return true
}

type RepositoryImpl struct {
	db *database.DB
}

func NewRepository(db *database.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `SELECT id, kind, amount, date, category, description, month, year, created_at, updated_at
				FROM transactions`

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Transaction, error) {
	return r.query(ctx, selectColumns+" ORDER BY id")
}

func (r *RepositoryImpl) Find(ctx context.Context, criteria Criteria) ([]Transaction, error) {
	var conditions []string
	var args []any
	if criteria.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, criteria.Category)
	}
	if criteria.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, string(criteria.Kind))
	}
	if criteria.Period != nil {
		conditions = append(conditions, "month = ?", "year = ?")
		args = append(args, criteria.Period.Month, criteria.Period.Year)
	}
	if !criteria.From.IsZero() {
		conditions = append(conditions, "date >= ?")
		args = append(args, criteria.From)
	}
	if !criteria.To.IsZero() {
		conditions = append(conditions, "date <= ?")
		args = append(args, criteria.To)
	}

	query := selectColumns
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	return r.query(ctx, query+" ORDER BY id", args...)
}

func (r *RepositoryImpl) query(ctx context.Context, query string, args ...any) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		err := database.StorageError("could not query transactions", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	transactions := make([]Transaction, 0)
	for rows.Next() {
		var t Transaction
		var kind string
		var createdAt, updatedAt int64
		if err := rows.Scan(
			&t.ID,
			&kind,
			&t.Amount,
			&t.Date,
			&t.Category,
			&t.Description,
			&t.Month,
			&t.Year,
			&createdAt,
			&updatedAt,
		); err != nil {
			err := database.StorageError("could not scan transaction", err)
			log.Error(err)
			return nil, err
		}
		t.Kind = Kind(kind)
		t.CreatedAt = time.UnixMilli(createdAt).UTC()
		t.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		err := database.StorageError("error iterating over transactions", err)
		log.Error(err)
		return nil, err
	}
	return transactions, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, transaction Transaction) (int, error) {
	transaction = transaction.SyncPeriod()
	query := `INSERT INTO transactions (
                    kind,
                    amount,
                    date,
                    category,
                    description,
                    month,
                    year,
                    created_at,
                    updated_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query),
		string(transaction.EffectiveKind()),
		transaction.Amount,
		transaction.Date,
		transaction.Category,
		transaction.Description,
		transaction.Month,
		transaction.Year,
		transaction.CreatedAt.UnixMilli(),
		transaction.UpdatedAt.UnixMilli(),
	).Scan(&id)
	if err != nil {
		err := database.StorageError("could not store transaction", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, transaction Transaction) (bool, error) {
	transaction = transaction.SyncPeriod()
	query := `UPDATE transactions SET
                  kind = ?,
                  amount = ?,
                  date = ?,
                  category = ?,
                  description = ?,
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
		string(transaction.EffectiveKind()),
		transaction.Amount,
		transaction.Date,
		transaction.Category,
		transaction.Description,
		transaction.Month,
		transaction.Year,
		transaction.UpdatedAt.UnixMilli(),
		transaction.ID,
	)
	if err != nil {
		err := database.StorageError("could not update transaction", err)
		log.Error(err)
		return false, err
	}
	n, err := affected(result)
	return n == 1, err
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	n, err := r.exec(ctx, "DELETE FROM transactions WHERE id = ?", id)
	return n == 1, err
}

func (r *RepositoryImpl) DeleteByCategory(ctx context.Context, category string) (int, error) {
	n, err := r.exec(ctx, "DELETE FROM transactions WHERE category = ?", category)
	return int(n), err
}

func (r *RepositoryImpl) exec(ctx context.Context, query string, args ...any) (int64, error) {
	stmt, err := r.db.PrepareContext(ctx, r.db.Rebind(query))
	if err != nil {
		err := database.StorageError("could not prepare query", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		err := database.StorageError("could not execute query", err)
		log.Error(err)
		return 0, err
	}
	return affected(result)
}

func affected(result sql.Result) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		err := database.StorageError("could not get rows affected", err)
		log.Error(err)
		return 0, err
	}
	return n, nil
}
