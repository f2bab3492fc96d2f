// Package storage provides the ledger persistence layer for cashheal.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/shopspring/decimal"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrInvalidTxType    = errors.New("invalid transaction type")
	ErrNestedTx         = errors.New("nested transactions not supported")
	ErrTxDone           = errors.New("transaction has already been committed or rolled back")
	ErrInvalidDateRange = errors.New("from date must not be after to date")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateCategoryKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return common.ErrCategoryRequired
	}
	return nil
}

func validatePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", common.ErrInvalidAmount, amount)
	}
	return nil
}

// validateEntry checks a ledger entry before it is appended and normalizes its category.
func validateEntry(txType model.TransactionType, amount decimal.Decimal, categoryKey *string) (*string, error) {
	if !txType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTxType, txType)
	}
	if err := validatePositive(amount); err != nil {
		return nil, err
	}
	if txType == model.TransactionIncome {
		return nil, nil
	}
	if categoryKey == nil {
		return nil, common.ErrCategoryRequired
	}
	if err := validateCategoryKey(*categoryKey); err != nil {
		return nil, err
	}
	key := *categoryKey
	return &key, nil
}

func validateFilter(filter service.TransactionFilter) error {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return fmt.Errorf("%w: %v > %v", ErrInvalidDateRange, *filter.From, *filter.To)
	}
	return nil
}
