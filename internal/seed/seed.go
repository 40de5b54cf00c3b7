// Package seed loads the demo dataset: five customers with accounts,
// holdings, transactions, spending history and derivative positions across
// three institutions.
package seed

import (
	"context"
	"fmt"

	"github.com/dummy-bank/portfolio-api/internal/logger"
	"github.com/dummy-bank/portfolio-api/internal/model"
	"github.com/dummy-bank/portfolio-api/internal/store"
)

const (
	_oidJohn   = "550e8400-e29b-41d4-a716-446655440001"
	_oidJane   = "550e8400-e29b-41d4-a716-446655440002"
	_oidRobert = "550e8400-e29b-41d4-a716-446655440003"
	_oidABC    = "550e8400-e29b-41d4-a716-446655440004"
	_oidMike   = "550e8400-e29b-41d4-a716-446655440005"
)

func strPtr(s string) *string { return &s }

var _customers = []model.Customer{
	{CustomerOID: _oidJohn, Name: "John Doe"},
	{CustomerOID: _oidJane, Name: "Jane Smith"},
	{CustomerOID: _oidRobert, Name: "Robert Johnson"},
	{CustomerOID: _oidABC, Name: "ABC Corporation"},
	{CustomerOID: _oidMike, Name: "Michael Chen"},
}

var _institutions = []model.Institution{
	{Name: "Global Bank", Type: "bank", ContactInfo: strPtr("contact@globalbank.com"), InternalCode: "GB001"},
	{Name: "Investment Corp", Type: "broker", ContactInfo: strPtr("support@investcorp.com"), InternalCode: "IC001"},
	{Name: "Crypto Exchange", Type: "exchange", ContactInfo: strPtr("help@cryptoex.com"), InternalCode: "CE001"},
}

// accounts reference institutions by 1-based position in _institutions;
// Apply rewrites the reference to the id the store actually assigned.
var _accounts = []model.CashAccount{
	{CustomerOID: _oidJohn, InstitutionID: 1, Balance: 50000, Currency: "USD", IBAN: strPtr("US1234567890123456")},
	{CustomerOID: _oidJohn, InstitutionID: 1, Balance: 25000, Currency: "EUR", IBAN: strPtr("DE9876543210987654")},
	{CustomerOID: _oidJane, InstitutionID: 1, Balance: 75000, Currency: "USD", IBAN: strPtr("US2345678901234567")},
	{CustomerOID: _oidJane, InstitutionID: 2, Balance: 100000, Currency: "USD", IBAN: strPtr("US3456789012345678")},
	{CustomerOID: _oidRobert, InstitutionID: 1, Balance: 30000, Currency: "USD", IBAN: strPtr("US4567890123456789")},
	{CustomerOID: _oidABC, InstitutionID: 2, Balance: 500000, Currency: "USD", IBAN: strPtr("US5678901234567890")},
	{CustomerOID: _oidMike, InstitutionID: 3, Balance: 85000, Currency: "USD", IBAN: strPtr("US6789012345678901")},
}

var _holdings = []model.Holding{
	{CustomerOID: _oidJohn, HoldingType: "stock", Symbol: "AAPL", Amount: 100},
	{CustomerOID: _oidJohn, HoldingType: "stock", Symbol: "GOOGL", Amount: 50},
	{CustomerOID: _oidJohn, HoldingType: "bond", Symbol: "US10Y", Amount: 10000},
	{CustomerOID: _oidJohn, HoldingType: "crypto", Symbol: "BTC", Amount: 2.5},
	{CustomerOID: _oidJohn, HoldingType: "etf", Symbol: "SPY", Amount: 200},
	{CustomerOID: _oidJane, HoldingType: "stock", Symbol: "TSLA", Amount: 150},
	{CustomerOID: _oidJane, HoldingType: "stock", Symbol: "NVDA", Amount: 75},
	{CustomerOID: _oidJane, HoldingType: "crypto", Symbol: "BTC", Amount: 5},
	{CustomerOID: _oidJane, HoldingType: "crypto", Symbol: "ETH", Amount: 20},
	{CustomerOID: _oidRobert, HoldingType: "bond", Symbol: "US10Y", Amount: 20000},
	{CustomerOID: _oidRobert, HoldingType: "bond", Symbol: "CORP_BONDS", Amount: 15000},
	{CustomerOID: _oidRobert, HoldingType: "etf", Symbol: "SPY", Amount: 100},
	{CustomerOID: _oidABC, HoldingType: "stock", Symbol: "AAPL", Amount: 1000},
	{CustomerOID: _oidABC, HoldingType: "bond", Symbol: "CORP_BONDS", Amount: 100000},
	{CustomerOID: _oidMike, HoldingType: "stock", Symbol: "AMZN", Amount: 25},
	{CustomerOID: _oidMike, HoldingType: "crypto", Symbol: "ETH", Amount: 10},
	{CustomerOID: _oidMike, HoldingType: "etf", Symbol: "VTI", Amount: 300},
}

var _transactions = []model.LedgerEntry{
	{CustomerOID: _oidJohn, Date: "2025-01-15", Type: "buy", Asset: strPtr("AAPL"), Amount: -15000},
	{CustomerOID: _oidJohn, Date: "2025-02-20", Type: "buy", Asset: strPtr("GOOGL"), Amount: -8500},
	{CustomerOID: _oidJohn, Date: "2025-03-10", Type: "deposit", Asset: strPtr("USD"), Amount: 25000},
	{CustomerOID: _oidJohn, Date: "2025-05-15", Type: "sell", Asset: strPtr("AAPL"), Amount: 3000},
	{CustomerOID: _oidJohn, Date: "2025-06-01", Type: "dividend", Asset: strPtr("SPY"), Amount: 250},
	{CustomerOID: _oidJane, Date: "2025-01-20", Type: "buy", Asset: strPtr("TSLA"), Amount: -25000},
	{CustomerOID: _oidJane, Date: "2025-03-05", Type: "buy", Asset: strPtr("BTC"), Amount: -20000},
	{CustomerOID: _oidJane, Date: "2025-05-20", Type: "sell", Asset: strPtr("TSLA"), Amount: 8000},
	{CustomerOID: _oidRobert, Date: "2025-01-10", Type: "buy", Asset: strPtr("US10Y"), Amount: -20000},
	{CustomerOID: _oidRobert, Date: "2025-04-20", Type: "dividend", Asset: strPtr("JNJ"), Amount: 180},
	{CustomerOID: _oidABC, Date: "2025-03-01", Type: "deposit", Asset: strPtr("USD"), Amount: 200000},
	{CustomerOID: _oidABC, Date: "2025-04-15", Type: "dividend", Asset: strPtr("AAPL"), Amount: 2500},
	{CustomerOID: _oidMike, Date: "2025-01-25", Type: "buy", Asset: strPtr("AMZN"), Amount: -35000},
	{CustomerOID: _oidMike, Date: "2025-05-10", Type: "buy", Asset: strPtr("VTI"), Amount: -15000},
}

var _spending = []model.SpendingRecord{
	{CustomerOID: _oidJohn, Category: "groceries", Amount: 800, Month: "2025-01"},
	{CustomerOID: _oidJohn, Category: "utilities", Amount: 300, Month: "2025-01"},
	{CustomerOID: _oidJohn, Category: "entertainment", Amount: 500, Month: "2025-01"},
	{CustomerOID: _oidJohn, Category: "groceries", Amount: 750, Month: "2025-02"},
	{CustomerOID: _oidJohn, Category: "healthcare", Amount: 250, Month: "2025-02"},
	{CustomerOID: _oidJane, Category: "groceries", Amount: 1200, Month: "2025-01"},
	{CustomerOID: _oidJane, Category: "travel", Amount: 2500, Month: "2025-01"},
	{CustomerOID: _oidJane, Category: "shopping", Amount: 1500, Month: "2025-02"},
	{CustomerOID: _oidRobert, Category: "groceries", Amount: 600, Month: "2025-01"},
	{CustomerOID: _oidRobert, Category: "utilities", Amount: 250, Month: "2025-01"},
	{CustomerOID: _oidABC, Category: "office_supplies", Amount: 5000, Month: "2025-01"},
	{CustomerOID: _oidABC, Category: "marketing", Amount: 15000, Month: "2025-01"},
	{CustomerOID: _oidMike, Category: "groceries", Amount: 900, Month: "2025-01"},
	{CustomerOID: _oidMike, Category: "travel", Amount: 1200, Month: "2025-01"},
}

var _derivatives = []model.DerivativePosition{
	{
		CustomerOID: _oidJohn, Type: "option", Side: model.SideBuy, Asset: "AAPL",
		StrikePrice: 150, Premium: 500, ExpirationDate: "2025-12-15",
		ExecutionDate: "2025-07-15", Strategy: strPtr("covered_call"),
		Status: model.PositionOpen, Counterparty: strPtr("BANK"),
	},
	{
		CustomerOID: _oidJohn, Type: "option", Side: model.SideSell, Asset: "SPY",
		StrikePrice: 420, Premium: 300, ExpirationDate: "2025-09-15",
		ExecutionDate: "2025-06-15", Strategy: strPtr("cash_secured_put"),
		Status: model.PositionOpen, Counterparty: strPtr("BROKER"),
	},
	{
		CustomerOID: _oidJane, Type: "option", Side: model.SideBuy, Asset: "TSLA",
		StrikePrice: 200, Premium: 1500, ExpirationDate: "2025-11-15",
		ExecutionDate: "2025-05-15", Strategy: strPtr("long_call"),
		Status: model.PositionOpen, Counterparty: strPtr("EXCHANGE"),
	},
	{
		CustomerOID: _oidJane, Type: "future", Side: model.SideBuy, Asset: "GOLD",
		StrikePrice: 2100, Premium: 2000, ExpirationDate: "2025-10-15",
		ExecutionDate: "2025-04-15", Strategy: strPtr("hedge"),
		Status: model.PositionOpen, Counterparty: strPtr("EXCHANGE"),
	},
}

// Apply inserts the demo dataset. It expects freshly created tables.
func Apply(ctx context.Context, st *store.Store, logger logger.Logger) error {
	for _, c := range _customers {
		if err := st.InsertCustomer(ctx, c.CustomerOID, c.Name); err != nil {
			return err
		}
	}

	institutionIDs := make([]int64, 0, len(_institutions))
	for _, inst := range _institutions {
		id, err := st.InsertInstitution(ctx, inst)
		if err != nil {
			return err
		}
		institutionIDs = append(institutionIDs, id)
	}

	for _, account := range _accounts {
		idx := account.InstitutionID - 1
		if idx < 0 || idx >= int64(len(institutionIDs)) {
			return fmt.Errorf("account fixture references unknown institution %d", account.InstitutionID)
		}
		account.InstitutionID = institutionIDs[idx]
		if err := st.InsertCashAccount(ctx, account); err != nil {
			return err
		}
	}

	for _, h := range _holdings {
		if err := st.InsertHolding(ctx, h); err != nil {
			return err
		}
	}
	for _, e := range _transactions {
		if err := st.InsertLedgerEntry(ctx, e); err != nil {
			return err
		}
	}
	for _, r := range _spending {
		if err := st.InsertSpending(ctx, r); err != nil {
			return err
		}
	}
	for _, d := range _derivatives {
		if err := st.InsertDerivative(ctx, d); err != nil {
			return err
		}
	}

	logger.Infof("seeded %d customers, %d institutions", len(_customers), len(_institutions))
	return nil
}
