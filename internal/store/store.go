// Package store is the sqlx-backed persistence layer. All customer-owned
// tables are keyed by customer_oid; institutions are shared reference data.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dummy-bank/portfolio-api/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// DuplicateError reports a unique-constraint violation on insert.
var DuplicateError = errors.New("duplicate record")

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const (
	_queryCustomer      = "SELECT id, customer_oid, name FROM customers WHERE customer_oid = $1"
	_queryCustomers     = "SELECT id, customer_oid, name FROM customers ORDER BY id"
	_queryHoldings      = "SELECT * FROM holdings WHERE customer_oid = $1 ORDER BY id"
	_queryCashAccounts  = "SELECT * FROM cash_accounts WHERE customer_oid = $1 ORDER BY id"
	_queryLedgerEntries = "SELECT * FROM ledger_entries WHERE customer_oid = $1 ORDER BY id"
	_querySpending      = "SELECT * FROM spending_records WHERE customer_oid = $1 ORDER BY id"
	_queryDerivatives   = "SELECT * FROM derivative_positions WHERE customer_oid = $1 ORDER BY id"
	_queryInstitutions  = "SELECT * FROM institutions WHERE id IN (?)"
)

func (s *Store) GetCustomer(ctx context.Context, customerOID string) (model.Customer, bool, error) {
	var c model.Customer
	if err := s.db.GetContext(ctx, &c, _queryCustomer, customerOID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Customer{}, false, nil
		}
		return model.Customer{}, false, fmt.Errorf("%w: can't query customer", err)
	}
	return c, true, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := s.db.SelectContext(ctx, &customers, _queryCustomers); err != nil {
		return nil, fmt.Errorf("%w: can't query customers", err)
	}
	return customers, nil
}

func (s *Store) ListHoldings(ctx context.Context, customerOID string) ([]model.Holding, error) {
	var holdings []model.Holding
	if err := s.db.SelectContext(ctx, &holdings, _queryHoldings, customerOID); err != nil {
		return nil, fmt.Errorf("%w: can't query holdings", err)
	}
	return holdings, nil
}

func (s *Store) ListCashAccounts(ctx context.Context, customerOID string) ([]model.CashAccount, error) {
	var accounts []model.CashAccount
	if err := s.db.SelectContext(ctx, &accounts, _queryCashAccounts, customerOID); err != nil {
		return nil, fmt.Errorf("%w: can't query cash accounts", err)
	}
	return accounts, nil
}

func (s *Store) ListLedgerEntries(ctx context.Context, customerOID string) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	if err := s.db.SelectContext(ctx, &entries, _queryLedgerEntries, customerOID); err != nil {
		return nil, fmt.Errorf("%w: can't query ledger entries", err)
	}
	return entries, nil
}

func (s *Store) ListSpending(ctx context.Context, customerOID string) ([]model.SpendingRecord, error) {
	var records []model.SpendingRecord
	if err := s.db.SelectContext(ctx, &records, _querySpending, customerOID); err != nil {
		return nil, fmt.Errorf("%w: can't query spending records", err)
	}
	return records, nil
}

func (s *Store) ListDerivatives(ctx context.Context, customerOID string) ([]model.DerivativePosition, error) {
	var positions []model.DerivativePosition
	if err := s.db.SelectContext(ctx, &positions, _queryDerivatives, customerOID); err != nil {
		return nil, fmt.Errorf("%w: can't query derivative positions", err)
	}
	return positions, nil
}

// GetInstitutions fetches the given institution ids in one batch. Ids with
// no matching row are simply absent from the result map.
func (s *Store) GetInstitutions(ctx context.Context, ids []int64) (map[int64]model.Institution, error) {
	byID := make(map[int64]model.Institution, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	query, args, err := sqlx.In(_queryInstitutions, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: can't build institutions query", err)
	}

	var institutions []model.Institution
	if err := s.db.SelectContext(ctx, &institutions, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%w: can't query institutions", err)
	}

	for _, inst := range institutions {
		byID[inst.ID] = inst
	}
	return byID, nil
}

const _insertCustomer = "INSERT INTO customers (customer_oid, name) VALUES ($1, $2)"

func (s *Store) InsertCustomer(ctx context.Context, customerOID, name string) error {
	if _, err := s.db.ExecContext(ctx, _insertCustomer, customerOID, name); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: customer %s", DuplicateError, customerOID)
		}
		return fmt.Errorf("%w: can't insert customer", err)
	}
	return nil
}

const (
	_deleteHoldings      = "DELETE FROM holdings WHERE customer_oid = $1"
	_deleteLedgerEntries = "DELETE FROM ledger_entries WHERE customer_oid = $1"
	_deleteSpending      = "DELETE FROM spending_records WHERE customer_oid = $1"
	_deleteCashAccounts  = "DELETE FROM cash_accounts WHERE customer_oid = $1"
	_deleteDerivatives   = "DELETE FROM derivative_positions WHERE customer_oid = $1"
	_deleteCustomer      = "DELETE FROM customers WHERE customer_oid = $1"
)

// DeleteCustomerData removes every record owned by the customer and the
// customer row itself in one transaction. Institutions are shared reference
// data and are never touched.
func (s *Store) DeleteCustomerData(ctx context.Context, customerOID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: can't begin delete transaction", err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		_deleteHoldings,
		_deleteLedgerEntries,
		_deleteSpending,
		_deleteCashAccounts,
		_deleteDerivatives,
		_deleteCustomer,
	} {
		if _, err := tx.ExecContext(ctx, query, customerOID); err != nil {
			return fmt.Errorf("%w: can't delete customer data", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: can't commit delete transaction", err)
	}
	return nil
}
