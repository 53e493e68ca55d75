package portal

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/caretide/ordersync/pkg/constants"
	"github.com/caretide/ordersync/pkg/orders"
)

// patientCache holds recently fetched patient documents. It is an opt-in
// optimization for runs where many orders share a patient; by default every
// order fetches its patient fresh so each reconcile stays independent.
type patientCache struct {
	store *gocache.Cache
}

// newPatientCache creates a cache with the given TTL. A zero or negative TTL
// falls back to the default from the constants package.
func newPatientCache(ttl time.Duration) *patientCache {
	if ttl <= 0 {
		ttl = constants.PatientCacheTTL
	}
	return &patientCache{
		store: gocache.New(ttl, constants.CacheCleanupInterval),
	}
}

// get retrieves a cached patient document.
func (c *patientCache) get(patientID string) (orders.Patient, bool) {
	v, ok := c.store.Get(patientID)
	if !ok {
		return nil, false
	}
	patient, ok := v.(orders.Patient)
	return patient, ok
}

// set stores a patient document under its identifier.
func (c *patientCache) set(patientID string, patient orders.Patient) {
	c.store.Set(patientID, patient, gocache.DefaultExpiration)
}

// itemCount returns the number of cached patients.
func (c *patientCache) itemCount() int {
	return c.store.ItemCount()
}
