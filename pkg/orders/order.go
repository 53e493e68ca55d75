// Package orders defines the order and patient documents exchanged with the
// care portal, along with the field conventions the reconciler relies on.
//
// Both document types are maps rather than structs on purpose. The portal's
// order schema is wide and drifts between deployments, and the update flow
// must write back every field it received, including fields this program
// knows nothing about. Typed accessors cover only the handful of fields the
// reconciler actually reads.
package orders

import (
	"strconv"
	"strings"
)

// Field names on an order document, as spelled on the portal's wire format.
const (
	// FieldCompanyID is the order's servicing company identifier.
	FieldCompanyID = "companyId"

	// FieldPgCompanyID is the order's payer-group company identifier.
	FieldPgCompanyID = "pgCompanyId"

	// FieldPatientID links the order to its patient record.
	FieldPatientID = "patientId"
)

// Order is a raw order document from the care portal. Unknown fields
// round-trip untouched through fetch, patch, and write-back.
type Order map[string]any

// CompanyID returns the order's companyId rendered as a string,
// or "" when the field is absent or null.
func (o Order) CompanyID() string {
	return o.StringField(FieldCompanyID)
}

// PgCompanyID returns the order's pgCompanyId rendered as a string,
// or "" when the field is absent or null.
func (o Order) PgCompanyID() string {
	return o.StringField(FieldPgCompanyID)
}

// PatientID returns the order's patientId rendered as a string,
// or "" when the field is absent or null.
func (o Order) PatientID() string {
	return o.StringField(FieldPatientID)
}

// StringField renders the named field as a string. Missing and null fields
// render as "". Numeric identifiers are formatted without an exponent so
// they survive JSON's number decoding intact.
func (o Order) StringField(name string) string {
	if o == nil {
		return ""
	}
	return stringValue(o[name])
}

// Has reports whether the named field is present on the order.
// A field is present when it is non-null and, for string values, contains
// at least one non-whitespace character.
func (o Order) Has(name string) bool {
	if o == nil {
		return false
	}
	return isPresent(o[name])
}

// Clone returns a deep copy of the order. Nested objects and arrays are
// copied recursively so mutations of the clone never leak into the original.
func (o Order) Clone() Order {
	if o == nil {
		return nil
	}
	clone := make(Order, len(o))
	for k, v := range o {
		clone[k] = deepCopyValue(v)
	}
	return clone
}

// CloneValue deep-copies a single decoded JSON value. Maps and slices are
// copied recursively, scalars returned as-is.
func CloneValue(v any) any {
	return deepCopyValue(v)
}

// deepCopyValue copies maps and slices recursively. Scalars are returned
// as-is since JSON scalars are immutable once decoded.
func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = deepCopyValue(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = deepCopyValue(val)
		}
		return s
	default:
		return v
	}
}

// isPresent implements the document-wide presence rule: non-null, and for
// strings, non-blank.
func isPresent(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	default:
		return true
	}
}

// stringValue renders a scalar JSON value as a string. Non-scalar values
// render as "" since none of the accessed fields are objects or arrays.
func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
