package reconciler

import (
	"fmt"
	"strings"

	"github.com/caretide/ordersync/pkg/orders"
)

// Patch holds the fill-only values to write onto an order. An empty field
// is not part of the patch.
type Patch struct {
	CompanyID   string
	PgCompanyID string
}

// IsEmpty reports whether the patch carries no values.
func (p Patch) IsEmpty() bool {
	return p.CompanyID == "" && p.PgCompanyID == ""
}

// String renders the patch for messages and logs,
// e.g. "companyId=C5, pgCompanyId=PG9".
func (p Patch) String() string {
	parts := make([]string, 0, 2)
	if p.CompanyID != "" {
		parts = append(parts, fmt.Sprintf("%s=%s", orders.FieldCompanyID, p.CompanyID))
	}
	if p.PgCompanyID != "" {
		parts = append(parts, fmt.Sprintf("%s=%s", orders.FieldPgCompanyID, p.PgCompanyID))
	}
	return strings.Join(parts, ", ")
}

// apply overlays the patch onto the order in place.
func (p Patch) apply(o orders.Order) {
	if p.CompanyID != "" {
		o[orders.FieldCompanyID] = p.CompanyID
	}
	if p.PgCompanyID != "" {
		o[orders.FieldPgCompanyID] = p.PgCompanyID
	}
}

// BuildPayload constructs the full-replacement update body: a deep copy of
// the original order with the patch overlaid, then a re-merge that restores
// any known field the original carried but the copy lost or nulled. The
// update endpoint replaces the whole document, so a payload missing a field
// would erase it on the portal side.
//
// The re-merge never overwrites a value the patch set; it only fills slots
// that are absent or null.
func BuildPayload(original orders.Order, patch Patch, knownFields []string) orders.Order {
	payload := original.Clone()
	patch.apply(payload)

	for _, field := range knownFields {
		orig, ok := original[field]
		if !ok || orig == nil {
			continue
		}
		if cur, exists := payload[field]; !exists || cur == nil {
			payload[field] = orders.CloneValue(orig)
		}
	}
	return payload
}
