package store

import (
	"context"
	"fmt"

	"github.com/dummy-bank/portfolio-api/internal/model"
)

const _schema = `
CREATE TABLE IF NOT EXISTS customers (
	id           SERIAL PRIMARY KEY,
	customer_oid TEXT NOT NULL UNIQUE,
	name         TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS institutions (
	id            SERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	type          TEXT NOT NULL,
	contact_info  TEXT,
	internal_code TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS holdings (
	id           SERIAL PRIMARY KEY,
	customer_oid TEXT NOT NULL,
	holding_type TEXT NOT NULL,
	symbol       TEXT NOT NULL,
	amount       DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_holdings_customer_oid ON holdings (customer_oid);
CREATE TABLE IF NOT EXISTS cash_accounts (
	id             SERIAL PRIMARY KEY,
	customer_oid   TEXT NOT NULL,
	institution_id BIGINT NOT NULL,
	balance        DOUBLE PRECISION NOT NULL,
	currency       TEXT NOT NULL,
	iban           TEXT
);
CREATE INDEX IF NOT EXISTS idx_cash_accounts_customer_oid ON cash_accounts (customer_oid);
CREATE TABLE IF NOT EXISTS ledger_entries (
	id           SERIAL PRIMARY KEY,
	customer_oid TEXT NOT NULL,
	date         TEXT NOT NULL,
	type         TEXT NOT NULL,
	asset        TEXT,
	amount       DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ledger_entries_customer_oid ON ledger_entries (customer_oid);
CREATE TABLE IF NOT EXISTS spending_records (
	id           SERIAL PRIMARY KEY,
	customer_oid TEXT NOT NULL,
	category     TEXT NOT NULL,
	amount       DOUBLE PRECISION NOT NULL,
	month        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_spending_records_customer_oid ON spending_records (customer_oid);
CREATE TABLE IF NOT EXISTS derivative_positions (
	id              SERIAL PRIMARY KEY,
	customer_oid    TEXT NOT NULL,
	type            TEXT NOT NULL,
	side            TEXT NOT NULL,
	asset           TEXT NOT NULL,
	strike_price    DOUBLE PRECISION NOT NULL,
	premium         DOUBLE PRECISION NOT NULL,
	expiration_date TEXT NOT NULL,
	execution_date  TEXT NOT NULL,
	strategy        TEXT,
	status          TEXT NOT NULL,
	counterparty    TEXT
);
CREATE INDEX IF NOT EXISTS idx_derivative_positions_customer_oid ON derivative_positions (customer_oid);
`

const _dropSchema = `
DROP TABLE IF EXISTS derivative_positions;
DROP TABLE IF EXISTS spending_records;
DROP TABLE IF EXISTS ledger_entries;
DROP TABLE IF EXISTS cash_accounts;
DROP TABLE IF EXISTS holdings;
DROP TABLE IF EXISTS institutions;
DROP TABLE IF EXISTS customers;
`

func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, _schema); err != nil {
		return fmt.Errorf("%w: can't init schema", err)
	}
	return nil
}

func (s *Store) DropSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, _dropSchema); err != nil {
		return fmt.Errorf("%w: can't drop schema", err)
	}
	return nil
}

const (
	_insertInstitution = `INSERT INTO institutions (name, type, contact_info, internal_code)
							VALUES ($1, $2, $3, $4) RETURNING id`
	_insertHolding = `INSERT INTO holdings (customer_oid, holding_type, symbol, amount)
							VALUES ($1, $2, $3, $4)`
	_insertCashAccount = `INSERT INTO cash_accounts (customer_oid, institution_id, balance, currency, iban)
							VALUES ($1, $2, $3, $4, $5)`
	_insertLedgerEntry = `INSERT INTO ledger_entries (customer_oid, date, type, asset, amount)
							VALUES ($1, $2, $3, $4, $5)`
	_insertSpending = `INSERT INTO spending_records (customer_oid, category, amount, month)
							VALUES ($1, $2, $3, $4)`
	_insertDerivative = `INSERT INTO derivative_positions (
								customer_oid,
								type,
								side,
								asset,
								strike_price,
								premium,
								expiration_date,
								execution_date,
								strategy,
								status,
								counterparty
							) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
)

func (s *Store) InsertInstitution(ctx context.Context, inst model.Institution) (int64, error) {
	var id int64
	if err := s.db.GetContext(ctx, &id, _insertInstitution,
		inst.Name, inst.Type, inst.ContactInfo, inst.InternalCode,
	); err != nil {
		return 0, fmt.Errorf("%w: can't insert institution", err)
	}
	return id, nil
}

func (s *Store) InsertHolding(ctx context.Context, h model.Holding) error {
	if _, err := s.db.ExecContext(ctx, _insertHolding,
		h.CustomerOID, h.HoldingType, h.Symbol, h.Amount,
	); err != nil {
		return fmt.Errorf("%w: can't insert holding", err)
	}
	return nil
}

func (s *Store) InsertCashAccount(ctx context.Context, a model.CashAccount) error {
	if _, err := s.db.ExecContext(ctx, _insertCashAccount,
		a.CustomerOID, a.InstitutionID, a.Balance, a.Currency, a.IBAN,
	); err != nil {
		return fmt.Errorf("%w: can't insert cash account", err)
	}
	return nil
}

func (s *Store) InsertLedgerEntry(ctx context.Context, e model.LedgerEntry) error {
	if _, err := s.db.ExecContext(ctx, _insertLedgerEntry,
		e.CustomerOID, e.Date, e.Type, e.Asset, e.Amount,
	); err != nil {
		return fmt.Errorf("%w: can't insert ledger entry", err)
	}
	return nil
}

func (s *Store) InsertSpending(ctx context.Context, r model.SpendingRecord) error {
	if _, err := s.db.ExecContext(ctx, _insertSpending,
		r.CustomerOID, r.Category, r.Amount, r.Month,
	); err != nil {
		return fmt.Errorf("%w: can't insert spending record", err)
	}
	return nil
}

func (s *Store) InsertDerivative(ctx context.Context, d model.DerivativePosition) error {
	if _, err := s.db.ExecContext(ctx, _insertDerivative,
		d.CustomerOID,
		d.Type,
		d.Side,
		d.Asset,
		d.StrikePrice,
		d.Premium,
		d.ExpirationDate,
		d.ExecutionDate,
		d.Strategy,
		d.Status,
		d.Counterparty,
	); err != nil {
		return fmt.Errorf("%w: can't insert derivative position", err)
	}
	return nil
}
