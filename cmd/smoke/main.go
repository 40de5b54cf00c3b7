package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dummy-bank/portfolio-api/internal/apiclient"
	"github.com/dummy-bank/portfolio-api/internal/logger"
	"github.com/dummy-bank/portfolio-api/internal/oid"
)

// Exercises a running instance end to end: registration (generated and
// custom identifiers, duplicates, bad input), existence checks, portfolio
// aggregation and deletion. Exits non-zero on the first broken expectation.
func main() {
	baseURL := flag.String("base-url", "http://localhost:3000", "portfolio API base url")
	flag.Parse()

	zapLogger, loggerSync, err := logger.NewZapLogger(logger.Info)
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := apiclient.New(*baseURL, zapLogger)
	failed := false
	check := func(ok bool, template string, args ...interface{}) {
		if ok {
			zapLogger.Infof("ok: "+template, args...)
			return
		}
		failed = true
		zapLogger.Errorf("failed: "+template, args...)
	}

	health, status, err := client.Health(ctx)
	if err != nil {
		zapLogger.Fatalf("%s: api unreachable at %s", err, *baseURL)
	}
	check(status == http.StatusOK && health != nil && health.Status == "healthy", "health check")

	registered, status, err := client.Register(ctx, "Alice Johnson", "")
	if err != nil {
		zapLogger.Fatalf("%s: register request failed", err)
	}
	check(status == http.StatusOK && registered != nil, "register with generated oid")
	if registered == nil {
		os.Exit(1)
	}
	if _, err := oid.Validate(registered.CustomerOID); err != nil {
		check(false, "generated oid %s is validator-accepting", registered.CustomerOID)
	}

	customOID := oid.New()
	custom, status, err := client.Register(ctx, "Bob Wilson", customOID)
	if err != nil {
		zapLogger.Fatalf("%s: register request failed", err)
	}
	check(status == http.StatusOK && custom != nil && custom.CustomerOID == customOID, "register with custom oid")

	_, status, err = client.Register(ctx, "Charlie Brown", customOID)
	if err != nil {
		zapLogger.Fatalf("%s: register request failed", err)
	}
	check(status == http.StatusConflict, "duplicate oid rejected with 409, got %d", status)

	_, status, err = client.Register(ctx, "A", "")
	if err != nil {
		zapLogger.Fatalf("%s: register request failed", err)
	}
	check(status == http.StatusBadRequest, "short name rejected with 400, got %d", status)

	_, status, err = client.Portfolio(ctx, "not-a-valid-oid")
	if err != nil {
		zapLogger.Fatalf("%s: portfolio request failed", err)
	}
	check(status == http.StatusBadRequest, "malformed oid rejected with 400, got %d", status)

	exists, status, err := client.Exists(ctx, customOID)
	if err != nil {
		zapLogger.Fatalf("%s: exists request failed", err)
	}
	check(status == http.StatusOK && exists != nil && exists.Exists, "existence check for %s", customOID)

	p, status, err := client.Portfolio(ctx, registered.CustomerOID)
	if err != nil {
		zapLogger.Fatalf("%s: portfolio request failed", err)
	}
	check(status == http.StatusOK && p != nil, "portfolio for fresh customer")
	if p != nil {
		s := p.Summary
		check(s.TotalCashBalance == 0 && s.TotalSpending == 0 && s.TotalAccounts == 0,
			"fresh customer has empty summary")
	}

	customers, status, err := client.ListCustomers(ctx)
	if err != nil {
		zapLogger.Fatalf("%s: list customers request failed", err)
	}
	check(status == http.StatusOK && len(customers) >= 2, "customer listing, got %d entries", len(customers))

	for _, target := range []string{registered.CustomerOID, customOID} {
		_, status, err = client.Delete(ctx, target)
		if err != nil {
			zapLogger.Fatalf("%s: delete request failed", err)
		}
		check(status == http.StatusOK, "delete %s", target)

		exists, status, err = client.Exists(ctx, target)
		if err != nil {
			zapLogger.Fatalf("%s: exists request failed", err)
		}
		check(status == http.StatusOK && exists != nil && !exists.Exists, "%s gone after delete", target)
	}

	_, status, err = client.Delete(ctx, customOID)
	if err != nil {
		zapLogger.Fatalf("%s: delete request failed", err)
	}
	check(status == http.StatusNotFound, "repeated delete rejected with 404, got %d", status)

	if failed {
		zapLogger.Fatalf("smoke run failed")
	}
	zapLogger.Infof("smoke run passed")
}
