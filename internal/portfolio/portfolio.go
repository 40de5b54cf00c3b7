// Package portfolio holds the customer lifecycle and aggregation logic.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dummy-bank/portfolio-api/internal/logger"
	"github.com/dummy-bank/portfolio-api/internal/model"
	"github.com/dummy-bank/portfolio-api/internal/oid"
	"github.com/dummy-bank/portfolio-api/internal/store"
)

var (
	NotFoundError      = errors.New("customer doesn't exist")
	AlreadyExistsError = errors.New("customer already exists")
	InvalidNameError   = errors.New("name must be at least 2 characters long")
)

// Store is the persistence surface the service needs. *store.Store satisfies
// it; tests substitute a double.
type Store interface {
	GetCustomer(ctx context.Context, customerOID string) (model.Customer, bool, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	ListHoldings(ctx context.Context, customerOID string) ([]model.Holding, error)
	ListCashAccounts(ctx context.Context, customerOID string) ([]model.CashAccount, error)
	ListLedgerEntries(ctx context.Context, customerOID string) ([]model.LedgerEntry, error)
	ListSpending(ctx context.Context, customerOID string) ([]model.SpendingRecord, error)
	ListDerivatives(ctx context.Context, customerOID string) ([]model.DerivativePosition, error)
	GetInstitutions(ctx context.Context, ids []int64) (map[int64]model.Institution, error)
	InsertCustomer(ctx context.Context, customerOID, name string) error
	DeleteCustomerData(ctx context.Context, customerOID string) error
}

type Service struct {
	store  Store
	logger logger.Logger
}

func NewService(store Store, logger logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Register creates a new customer. When customerOID is empty a fresh UUID is
// generated; a supplied one must pass validation and be unused.
func (s *Service) Register(ctx context.Context, name, customerOID string) (model.Customer, error) {
	if customerOID != "" {
		if _, err := oid.Validate(customerOID); err != nil {
			return model.Customer{}, err
		}
	} else {
		customerOID = oid.New()
	}

	if _, exists, err := s.store.GetCustomer(ctx, customerOID); err != nil {
		return model.Customer{}, err
	} else if exists {
		return model.Customer{}, fmt.Errorf("%w: %s", AlreadyExistsError, customerOID)
	}

	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return model.Customer{}, InvalidNameError
	}

	if err := s.store.InsertCustomer(ctx, customerOID, name); err != nil {
		// Concurrent registration of the same oid loses the race at the
		// unique constraint and still surfaces as a conflict.
		if errors.Is(err, store.DuplicateError) {
			return model.Customer{}, fmt.Errorf("%w: %s", AlreadyExistsError, customerOID)
		}
		return model.Customer{}, err
	}

	s.logger.Infof("registered customer %s", customerOID)
	return model.Customer{CustomerOID: customerOID, Name: name}, nil
}

// Delete removes the customer and every dependent record, all-or-nothing.
func (s *Service) Delete(ctx context.Context, customerOID string) error {
	if _, err := oid.Validate(customerOID); err != nil {
		return err
	}

	if _, exists, err := s.store.GetCustomer(ctx, customerOID); err != nil {
		return err
	} else if !exists {
		return fmt.Errorf("%w: %s", NotFoundError, customerOID)
	}

	if err := s.store.DeleteCustomerData(ctx, customerOID); err != nil {
		return err
	}

	s.logger.Infof("deleted customer %s and all associated data", customerOID)
	return nil
}

// Exists reports whether the customer is known, with its name when it is.
func (s *Service) Exists(ctx context.Context, customerOID string) (model.Customer, bool, error) {
	if _, err := oid.Validate(customerOID); err != nil {
		return model.Customer{}, false, err
	}
	return s.store.GetCustomer(ctx, customerOID)
}

func (s *Service) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.store.ListCustomers(ctx)
}
