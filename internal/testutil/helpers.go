package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/cache"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/repository"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/service"
)

// TestShareTokenTTL is the share token lifetime of services built by NewTestSimulationService.
const TestShareTokenTTL = time.Hour

// NewTestShareKey generates a fresh fernet key.
func NewTestShareKey(t *testing.T) *fernet.Key {
	t.Helper()

	var k fernet.Key
	if err := k.Generate(); err != nil {
		t.Fatalf("Failed to generate share key: %v", err)
	}
	return &k
}

// NewTestSimulationService creates a SimulationService backed by db and an
// in-memory cache, logging nowhere.
func NewTestSimulationService(t *testing.T, db *sql.DB) *service.SimulationService {
	t.Helper()

	return NewTestSimulationServiceWithCache(t, db, cache.NewMemoryCache())
}

// NewTestSimulationServiceWithCache creates a SimulationService using the given cache.
// Pass nil to disable caching.
func NewTestSimulationServiceWithCache(t *testing.T, db *sql.DB, c cache.Cache) *service.SimulationService {
	t.Helper()

	return service.NewSimulationService(
		db,
		repository.NewSimulationRepository(db),
		c,
		zap.NewNop(),
		service.SimulationOptions{
			CacheTTL:         time.Minute,
			ShareKey:         NewTestShareKey(t),
			ShareTokenTTL:    TestShareTokenTTL,
			BatchConcurrency: 4,
		},
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeUserID generates a unique user tag for testing.
//
// Example usage:
//
//	user := testutil.MakeUserID("alice")
//	// Returns: "alice-ABC123"
func MakeUserID(base string) string {
	if base == "" {
		base = "user"
	}
	return base + "-" + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
