//go:build pact
// +build pact

// Package pacttest holds the shared names, provider states, and fixture
// payloads for the fulfillment contract tests.
package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "fulfillment-service"
	ConsumerName = "orderdesk-gateway"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order ord-101 exists"
	StateOrderMissing   = "no order with id ord-404"
	StateProductsSeeded = "products seeded"
)

const (
	ExistingOrderID = "ord-101"
	MissingOrderID  = "ord-404"
	ExistingProduct = "prd-201"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload provides stable test data for order interactions.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"id":               ExistingOrderID,
		"orderNumber":      "1001",
		"customerName":     "Acme Traders",
		"status":           "pending",
		"isPaid":           false,
		"paymentCondition": "net-15",
		"priority":         "medium",
		"items": []map[string]any{
			{
				"productId": ExistingProduct,
				"name":      "Steel rod",
				"quantity":  2,
				"unitPrice": 2500,
			},
		},
		"total":     5000,
		"createdAt": "2026-03-01T09:00:00Z",
	}
}

// ExampleProductPayload provides stable test data for product interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":        ExistingProduct,
		"name":      "Steel rod",
		"stock":     12,
		"dimension": "6m",
		"threshold": 5,
		"unitPrice": 2500,
		"updatedAt": "2026-03-01T09:00:00Z",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
