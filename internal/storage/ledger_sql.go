package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/shopspring/decimal"
)

func seedLedger(ctx context.Context, q querier) error {
	var balances int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM balances`).Scan(&balances); err != nil {
		return common.StorageError("count balances", err)
	}
	if balances == 0 {
		seed := model.SeedBalance()
		if _, err := q.ExecContext(ctx,
			`INSERT INTO balances (id, total, current) VALUES (1, ?, ?)`,
			seed.Total.String(), seed.Current.String()); err != nil {
			return common.StorageError("seed balance", err)
		}
		slog.Info("Seeded balance", "total", seed.Total, "current", seed.Current)
	}

	var categories int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&categories); err != nil {
		return common.StorageError("count categories", err)
	}
	if categories > 0 {
		return nil
	}

	for _, c := range model.SeedCategories() {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO categories (key, label, amount, color, emoji) VALUES (?, ?, ?, ?, ?)`,
			c.Key, c.Label, c.Amount.String(), c.Color, c.Emoji); err != nil {
			return common.StorageError("seed categories", err)
		}
	}
	slog.Info("Seeded categories", "count", len(model.SeedCategories()))
	return nil
}

func getBalance(ctx context.Context, q querier) (model.Balance, error) {
	var b model.Balance
	err := q.QueryRowContext(ctx, `SELECT total, current FROM balances WHERE id = 1`).Scan(&b.Total, &b.Current)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Balance{Total: decimal.Zero, Current: decimal.Zero}, nil
	}
	if err != nil {
		return model.Balance{}, common.StorageError("get balance", err)
	}
	return b, nil
}

func setBalance(ctx context.Context, q querier, total, current decimal.Decimal) error {
	if total.IsNegative() || current.IsNegative() {
		return fmt.Errorf("%w: balance cannot be negative", common.ErrInvalidAmount)
	}

	result, err := q.ExecContext(ctx,
		`UPDATE balances SET total = ?, current = ? WHERE id = 1`,
		total.String(), current.String())
	if err != nil {
		return common.StorageError("update balance", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return common.StorageError("update balance", err)
	}
	if rows > 0 {
		return nil
	}

	if _, err := q.ExecContext(ctx,
		`INSERT INTO balances (id, total, current) VALUES (1, ?, ?)`,
		total.String(), current.String()); err != nil {
		return common.StorageError("insert balance", err)
	}
	return nil
}

const categoryColumns = `id, key, label, amount, color, emoji`

func scanCategory(row interface{ Scan(...any) error }) (model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Key, &c.Label, &c.Amount, &c.Color, &c.Emoji)
	return c, err
}

func getCategories(ctx context.Context, q querier) ([]model.Category, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
	if err != nil {
		return nil, common.StorageError("get categories", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, common.StorageError("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StorageError("get categories", err)
	}
	return categories, nil
}

func getCategory(ctx context.Context, q querier, key string) (*model.Category, error) {
	c, err := scanCategory(q.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE key = ?`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", common.ErrCategoryNotFound, key)
	}
	if err != nil {
		return nil, common.StorageError("get category", err)
	}
	return &c, nil
}

func updateCategoryAmount(ctx context.Context, q querier, key string, delta decimal.Decimal) error {
	c, err := getCategory(ctx, q, key)
	if err != nil {
		return err
	}
	return setCategoryAmount(ctx, q, key, c.ApplyDelta(delta))
}

func setCategoryAmount(ctx context.Context, q querier, key string, amount decimal.Decimal) error {
	result, err := q.ExecContext(ctx,
		`UPDATE categories SET amount = ? WHERE key = ?`,
		model.ClampZero(amount).String(), key)
	if err != nil {
		return common.StorageError("set category amount", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return common.StorageError("set category amount", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", common.ErrCategoryNotFound, key)
	}
	return nil
}

func addTransaction(ctx context.Context, q querier, now time.Time, txType model.TransactionType, amount decimal.Decimal, categoryKey *string) (model.Transaction, error) {
	key, err := validateEntry(txType, amount, categoryKey)
	if err != nil {
		return model.Transaction{}, err
	}
	if key != nil {
		if _, err := getCategory(ctx, q, *key); err != nil {
			return model.Transaction{}, err
		}
	}

	createdAt := time.UnixMilli(now.UnixMilli())
	result, err := q.ExecContext(ctx,
		`INSERT INTO transactions (type, category_key, amount, created_at) VALUES (?, ?, ?, ?)`,
		string(txType), key, amount.String(), createdAt.UnixMilli())
	if err != nil {
		return model.Transaction{}, common.StorageError("add transaction", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Transaction{}, common.StorageError("add transaction", err)
	}

	return model.Transaction{
		ID:          id,
		Type:        txType,
		CategoryKey: key,
		Amount:      amount,
		CreatedAt:   createdAt,
	}, nil
}

func getTransactions(ctx context.Context, q querier, filter service.TransactionFilter) ([]model.Transaction, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`SELECT id, type, category_key, amount, created_at FROM transactions WHERE 1 = 1`)
	if filter.From != nil {
		query.WriteString(` AND created_at >= ?`)
		args = append(args, filter.From.UnixMilli())
	}
	if filter.To != nil {
		query.WriteString(` AND created_at <= ?`)
		args = append(args, filter.To.UnixMilli())
	}
	query.WriteString(` ORDER BY created_at DESC, id DESC`)
	if filter.Limit > 0 {
		query.WriteString(` LIMIT ?`)
		args = append(args, filter.Limit)
	}

	rows, err := q.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, common.StorageError("get transactions", err)
	}
	defer func() { _ = rows.Close() }()

	transactions := []model.Transaction{}
	for rows.Next() {
		var (
			txn       model.Transaction
			txType    string
			category  sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&txn.ID, &txType, &category, &txn.Amount, &createdAt); err != nil {
			return nil, common.StorageError("scan transaction", err)
		}
		txn.Type = model.TransactionType(txType)
		txn.CreatedAt = time.UnixMilli(createdAt)
		if category.Valid {
			key := category.String
			txn.CategoryKey = &key
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StorageError("get transactions", err)
	}
	return transactions, nil
}
