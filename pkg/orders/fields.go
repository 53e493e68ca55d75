package orders

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/caretide/ordersync/pkg/errors"
)

// DefaultKnownFields returns the baseline allowlist of order fields that the
// update payload must never lose. The reconciler re-merges these from the
// original order after applying a patch, filling only slots the working copy
// dropped. The list is a safety net for the portal's full-replacement PUT,
// not a schema.
func DefaultKnownFields() []string {
	return []string{
		"orderId",
		"orderNumber",
		"orderDate",
		"orderStatus",
		"orderType",
		FieldCompanyID,
		FieldPgCompanyID,
		FieldPatientID,
		"patientName",
		"physicianId",
		"physicianName",
		"episodeId",
		"startDate",
		"endDate",
		"notes",
		"createdAt",
		"updatedAt",
	}
}

// fieldsFile is the on-disk shape of a known-fields override.
type fieldsFile struct {
	KnownFields []string `yaml:"known_fields"`
}

// LoadKnownFields reads a known-fields allowlist override from a YAML file.
// The file holds a single `known_fields` list:
//
//	known_fields:
//	  - orderId
//	  - companyId
//	  - pgCompanyId
//
// An empty or missing list is an error.
func LoadKnownFields(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var file fieldsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	if len(file.KnownFields) == 0 {
		return nil, errors.NewParseError("yaml", path, "no known_fields entries", nil)
	}

	return file.KnownFields, nil
}
