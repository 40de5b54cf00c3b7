// Package apiclient is a small client for the portfolio API, used by the
// smoke tool. Requests are paced through a leaky-bucket limiter so a smoke
// run can't hammer a shared environment.
package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/dummy-bank/portfolio-api/internal/logger"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	_healthURL    = "/health"
	_registerURL  = "/register-customer"
	_customersURL = "/customers"
)

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type RegisterResponse struct {
	CustomerOID string `json:"customer_oid"`
	Name        string `json:"name"`
	Message     string `json:"message"`
}

type ExistsResponse struct {
	CustomerOID string  `json:"customer_oid"`
	Exists      bool    `json:"exists"`
	Name        *string `json:"name"`
}

type DeleteResponse struct {
	CustomerOID string `json:"customer_oid"`
	Message     string `json:"message"`
}

type Customer struct {
	CustomerOID string `json:"customer_oid"`
	Name        string `json:"name"`
}

type PortfolioSummary struct {
	CustomerOID              string          `json:"customer_oid"`
	TotalCashBalance         float64         `json:"total_cash_balance"`
	TotalSpending            float64         `json:"total_spending"`
	TotalHoldings            int             `json:"total_holdings"`
	TotalAccounts            int             `json:"total_accounts"`
	TotalTransactions        int             `json:"total_transactions"`
	TotalSpendingCategories  int             `json:"total_spending_categories"`
	TotalDerivativePositions int             `json:"total_derivative_positions"`
	HasData                  map[string]bool `json:"has_data"`
}

type PortfolioResponse struct {
	CustomerOID string           `json:"customer_oid"`
	Summary     PortfolioSummary `json:"portfolio_summary"`
}

type Client struct {
	c           *resty.Client
	rateLimiter ratelimit.Limiter

	logger logger.Logger
}

func New(baseURL string, logger logger.Logger) *Client {
	client := resty.New().
		SetLogger(logger).
		SetBaseURL(baseURL)

	return &Client{
		c:           client,
		rateLimiter: ratelimit.New(120, ratelimit.Per(1*time.Minute)),
		logger:      logger,
	}
}

// Each call returns the parsed body (nil on a non-2xx response), the HTTP
// status code, and a transport-level error. API-level failures are reported
// through the status code, not the error.

func (c *Client) Health(ctx context.Context) (*HealthResponse, int, error) {
	resp, err := c.request(ctx, &HealthResponse{}).Get(_healthURL)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: can't send health request", err)
	}
	defer resp.Body.Close()
	if resp.IsSuccess() {
		return resp.Result().(*HealthResponse), resp.StatusCode(), nil
	}
	return nil, resp.StatusCode(), nil
}

type registerRequest struct {
	Name        string `json:"name"`
	CustomerOID string `json:"customer_oid,omitempty"`
}

func (c *Client) Register(ctx context.Context, name, customerOID string) (*RegisterResponse, int, error) {
	resp, err := c.request(ctx, &RegisterResponse{}).
		SetBody(registerRequest{Name: name, CustomerOID: customerOID}).
		Post(_registerURL)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: can't send register request", err)
	}
	defer resp.Body.Close()
	if resp.IsSuccess() {
		return resp.Result().(*RegisterResponse), resp.StatusCode(), nil
	}
	return nil, resp.StatusCode(), nil
}

func (c *Client) Portfolio(ctx context.Context, customerOID string) (*PortfolioResponse, int, error) {
	resp, err := c.request(ctx, &PortfolioResponse{}).Get("/user-portfolio/" + customerOID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: can't send portfolio request", err)
	}
	defer resp.Body.Close()
	if resp.IsSuccess() {
		return resp.Result().(*PortfolioResponse), resp.StatusCode(), nil
	}
	return nil, resp.StatusCode(), nil
}

func (c *Client) Exists(ctx context.Context, customerOID string) (*ExistsResponse, int, error) {
	resp, err := c.request(ctx, &ExistsResponse{}).Get("/customer/" + customerOID + "/exists")
	if err != nil {
		return nil, 0, fmt.Errorf("%w: can't send exists request", err)
	}
	defer resp.Body.Close()
	if resp.IsSuccess() {
		return resp.Result().(*ExistsResponse), resp.StatusCode(), nil
	}
	return nil, resp.StatusCode(), nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]Customer, int, error) {
	resp, err := c.request(ctx, &[]Customer{}).Get(_customersURL)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: can't send list customers request", err)
	}
	defer resp.Body.Close()
	if resp.IsSuccess() {
		return *resp.Result().(*[]Customer), resp.StatusCode(), nil
	}
	return nil, resp.StatusCode(), nil
}

func (c *Client) Delete(ctx context.Context, customerOID string) (*DeleteResponse, int, error) {
	resp, err := c.request(ctx, &DeleteResponse{}).Delete("/customer/" + customerOID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: can't send delete request", err)
	}
	defer resp.Body.Close()
	if resp.IsSuccess() {
		return resp.Result().(*DeleteResponse), resp.StatusCode(), nil
	}
	return nil, resp.StatusCode(), nil
}

func (c *Client) request(ctx context.Context, result any) *resty.Request {
	c.rateLimiter.Take()
	return c.c.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&ErrorResponse{})
}
