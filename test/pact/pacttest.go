//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "travel-orders-api"
	ConsumerName = "travel-portal"

	StateUserLoggedIn = "requester pact-user is logged in"
	StateOrderExists  = "pact-user owns travel order 7d0c5f4e"
	StateOrderMissing = "no travel order 0b1e8d1a exists"
)

const (
	UserID    = "5a4b3c2d-1e0f-4a9b-8c7d-6e5f4a3b2c1d"
	UserName  = "Pact User"
	UserEmail = "pact.user@example.com"
	// UserToken is accepted by the provider's contract token issuer for UserID.
	UserToken = "pact-user-token"

	ExistingOrderID = "7d0c5f4e-3b2a-4c1d-9e8f-7a6b5c4d3e2f"
	MissingOrderID  = "0b1e8d1a-2c3d-4e5f-8a9b-0c1d2e3f4a5b"

	Destination   = "Lisboa"
	DepartureDate = "2025-07-01"
	ReturnDate    = "2025-07-12"
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

// PactFile returns the canonical pact file path for the travel portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
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

// ExampleCreatePayload is the body the portal sends to request a trip.
func ExampleCreatePayload() map[string]any {
	return map[string]any{
		"destination":    Destination,
		"departure_date": DepartureDate,
		"return_date":    ReturnDate,
	}
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
