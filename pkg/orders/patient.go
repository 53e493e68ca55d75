package orders

// Field names on a patient document.
const (
	// FieldAgencyInfo is the nested block holding agency-level identifiers.
	FieldAgencyInfo = "agencyInfo"

	// FieldAgencyCompanyID is the company identifier inside agencyInfo.
	FieldAgencyCompanyID = "companyId"

	// FieldAgencyPgCompanyID is the payer-group identifier inside agencyInfo.
	// The lowercase "pgcompanyID" spelling does not match the order's
	// "pgCompanyId". That is the portal's wire contract, not a typo here.
	FieldAgencyPgCompanyID = "pgcompanyID"
)

// Patient is a raw patient document from the care portal. Only the nested
// agencyInfo block is read; the rest of the document is carried opaquely.
type Patient map[string]any

// AgencyInfo returns the nested agencyInfo object, or nil when the block is
// absent or not an object.
func (p Patient) AgencyInfo() map[string]any {
	if p == nil {
		return nil
	}
	if info, ok := p[FieldAgencyInfo].(map[string]any); ok {
		return info
	}
	return nil
}

// AgencyCompanyID returns agencyInfo.companyId and whether it is present
// (non-null, non-blank).
func (p Patient) AgencyCompanyID() (string, bool) {
	return p.agencyField(FieldAgencyCompanyID)
}

// AgencyPgCompanyID returns agencyInfo.pgcompanyID and whether it is present
// (non-null, non-blank).
func (p Patient) AgencyPgCompanyID() (string, bool) {
	return p.agencyField(FieldAgencyPgCompanyID)
}

// agencyField reads one field from the agencyInfo block.
func (p Patient) agencyField(name string) (string, bool) {
	info := p.AgencyInfo()
	if info == nil {
		return "", false
	}
	v, ok := info[name]
	if !ok || !isPresent(v) {
		return "", false
	}
	return stringValue(v), true
}
