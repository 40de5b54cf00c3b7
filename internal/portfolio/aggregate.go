package portfolio

import (
	"context"
	"fmt"

	"github.com/dummy-bank/portfolio-api/internal/model"
	"github.com/dummy-bank/portfolio-api/internal/money"
	"github.com/dummy-bank/portfolio-api/internal/oid"
)

type AccountWithInstitution struct {
	model.CashAccount
	// Institution is nil when the account references an unknown institution id.
	Institution *model.Institution `json:"institution"`
}

type HasData struct {
	Holdings     bool `json:"holdings"`
	Accounts     bool `json:"accounts"`
	Transactions bool `json:"transactions"`
	Spending     bool `json:"spending"`
	Derivatives  bool `json:"derivatives"`
}

type Summary struct {
	CustomerOID              string  `json:"customer_oid"`
	TotalCashBalance         float64 `json:"total_cash_balance"`
	TotalSpending            float64 `json:"total_spending"`
	TotalHoldings            int     `json:"total_holdings"`
	TotalAccounts            int     `json:"total_accounts"`
	TotalTransactions        int     `json:"total_transactions"`
	TotalSpendingCategories  int     `json:"total_spending_categories"`
	TotalDerivativePositions int     `json:"total_derivative_positions"`
	HasData                  HasData `json:"has_data"`
}

type Portfolio struct {
	CustomerOID  string                     `json:"customer_oid"`
	User         model.Customer             `json:"user"`
	Holdings     []model.Holding            `json:"holdings"`
	BankAccounts []AccountWithInstitution   `json:"bank_accounts"`
	Transactions []model.LedgerEntry        `json:"transactions"`
	Spending     []model.SpendingRecord     `json:"spending"`
	Derivatives  []model.DerivativePosition `json:"derivatives"`
	Summary      Summary                    `json:"portfolio_summary"`
}

// Aggregate assembles the consolidated view of one customer: identity, all
// related collections, resolved institutions for the cash accounts, and the
// summary block. It is a pure read.
func (s *Service) Aggregate(ctx context.Context, customerOID string) (*Portfolio, error) {
	if _, err := oid.Validate(customerOID); err != nil {
		return nil, err
	}

	user, exists, err := s.store.GetCustomer(ctx, customerOID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", NotFoundError, customerOID)
	}

	holdings, err := s.store.ListHoldings(ctx, customerOID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.store.ListCashAccounts(ctx, customerOID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.store.ListLedgerEntries(ctx, customerOID)
	if err != nil {
		return nil, err
	}
	spending, err := s.store.ListSpending(ctx, customerOID)
	if err != nil {
		return nil, err
	}
	derivatives, err := s.store.ListDerivatives(ctx, customerOID)
	if err != nil {
		return nil, err
	}

	institutions, err := s.store.GetInstitutions(ctx, distinctInstitutionIDs(accounts))
	if err != nil {
		return nil, err
	}

	bankAccounts := make([]AccountWithInstitution, 0, len(accounts))
	balances := make([]float64, 0, len(accounts))
	for _, account := range accounts {
		resolved := AccountWithInstitution{CashAccount: account}
		if inst, ok := institutions[account.InstitutionID]; ok {
			resolved.Institution = &inst
		}
		bankAccounts = append(bankAccounts, resolved)
		balances = append(balances, account.Balance)
	}

	spendingAmounts := make([]float64, 0, len(spending))
	categories := make(map[string]struct{}, len(spending))
	for _, record := range spending {
		spendingAmounts = append(spendingAmounts, record.Amount)
		categories[record.Category] = struct{}{}
	}

	return &Portfolio{
		CustomerOID:  customerOID,
		User:         user,
		Holdings:     orEmpty(holdings),
		BankAccounts: bankAccounts,
		Transactions: orEmpty(transactions),
		Spending:     orEmpty(spending),
		Derivatives:  orEmpty(derivatives),
		Summary: Summary{
			CustomerOID: customerOID,
			// Balances are summed nominally across currencies.
			TotalCashBalance:         money.Sum(balances),
			TotalSpending:            money.Sum(spendingAmounts),
			TotalHoldings:            len(holdings),
			TotalAccounts:            len(accounts),
			TotalTransactions:        len(transactions),
			TotalSpendingCategories:  len(categories),
			TotalDerivativePositions: len(derivatives),
			HasData: HasData{
				Holdings:     len(holdings) > 0,
				Accounts:     len(accounts) > 0,
				Transactions: len(transactions) > 0,
				Spending:     len(spending) > 0,
				Derivatives:  len(derivatives) > 0,
			},
		},
	}, nil
}

// orEmpty keeps empty collections encoding as JSON arrays rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func distinctInstitutionIDs(accounts []model.CashAccount) []int64 {
	seen := make(map[int64]struct{}, len(accounts))
	ids := make([]int64, 0, len(accounts))
	for _, account := range accounts {
		if _, ok := seen[account.InstitutionID]; ok {
			continue
		}
		seen[account.InstitutionID] = struct{}{}
		ids = append(ids, account.InstitutionID)
	}
	return ids
}
