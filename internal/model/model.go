package model

type Customer struct {
	ID          int64  `db:"id" json:"-"`
	CustomerOID string `db:"customer_oid" json:"customer_oid"`
	Name        string `db:"name" json:"name"`
}

type Holding struct {
	ID          int64   `db:"id" json:"id"`
	CustomerOID string  `db:"customer_oid" json:"customer_oid"`
	HoldingType string  `db:"holding_type" json:"holding_type"`
	Symbol      string  `db:"symbol" json:"symbol"`
	Amount      float64 `db:"amount" json:"amount"`
}

type Institution struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Type         string  `db:"type" json:"type"` // "bank", "broker", "exchange"
	ContactInfo  *string `db:"contact_info" json:"contact_info"`
	InternalCode string  `db:"internal_code" json:"internal_code"`
}

type CashAccount struct {
	ID            int64   `db:"id" json:"id"`
	CustomerOID   string  `db:"customer_oid" json:"customer_oid"`
	InstitutionID int64   `db:"institution_id" json:"institution_id"`
	Balance       float64 `db:"balance" json:"balance"`
	Currency      string  `db:"currency" json:"currency"`
	IBAN          *string `db:"iban" json:"iban"`
}

// LedgerEntry amounts are signed: negative for outflows (buys),
// positive for inflows (sells, deposits, dividends).
type LedgerEntry struct {
	ID          int64   `db:"id" json:"id"`
	CustomerOID string  `db:"customer_oid" json:"customer_oid"`
	Date        string  `db:"date" json:"date"`
	Type        string  `db:"type" json:"type"`
	Asset       *string `db:"asset" json:"asset"`
	Amount      float64 `db:"amount" json:"amount"`
}

type SpendingRecord struct {
	ID          int64   `db:"id" json:"id"`
	CustomerOID string  `db:"customer_oid" json:"customer_oid"`
	Category    string  `db:"category" json:"category"`
	Amount      float64 `db:"amount" json:"amount"`
	Month       string  `db:"month" json:"month"` // "YYYY-MM"
}

type PositionStatus string

const (
	PositionOpen      PositionStatus = "open"
	PositionExercised PositionStatus = "exercised"
	PositionExpired   PositionStatus = "expired"
)

type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

type DerivativePosition struct {
	ID             int64          `db:"id" json:"id"`
	CustomerOID    string         `db:"customer_oid" json:"customer_oid"`
	Type           string         `db:"type" json:"type"` // "option", "future"
	Side           TradeSide      `db:"side" json:"side"`
	Asset          string         `db:"asset" json:"asset"`
	StrikePrice    float64        `db:"strike_price" json:"strike_price"`
	Premium        float64        `db:"premium" json:"premium"`
	ExpirationDate string         `db:"expiration_date" json:"expiration_date"`
	ExecutionDate  string         `db:"execution_date" json:"execution_date"`
	Strategy       *string        `db:"strategy" json:"strategy"`
	Status         PositionStatus `db:"status" json:"status"`
	Counterparty   *string        `db:"counterparty" json:"counterparty"`
}
