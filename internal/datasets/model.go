package datasets

import (
	"strings"

	"github.com/vantage-intel/vantage/internal/policy"
	"github.com/vantage-intel/vantage/internal/shared"
)

// Format is a dataset file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatXML     Format = "xml"
	FormatParquet Format = "parquet"
	FormatSQL     Format = "sql"
	FormatOther   Format = "other"
)

var formats = map[Format]struct{}{
	FormatCSV:     {},
	FormatJSON:    {},
	FormatXML:     {},
	FormatParquet: {},
	FormatSQL:     {},
	FormatOther:   {},
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	_, ok := formats[f]
	return ok
}

// Dataset is a catalogued data source with a sensitivity classification.
// Visibility decisions live in the policy package; the dataset only carries
// the level.
type Dataset struct {
	shared.RecordHeader
	Name           string                `json:"name" db:"name"`
	Description    string                `json:"description" db:"description"`
	Source         string                `json:"source" db:"source"`
	Classification policy.Classification `json:"classification" db:"classification"`
	Format         Format                `json:"format" db:"format"`
	SizeMB         float64               `json:"size_mb" db:"size_mb"`
}

// Validate checks fields in a fixed order and reports only the first
// failure: name, description, source, classification, format, size.
func (d Dataset) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return shared.NewValidationError("name", "required", "name cannot be empty")
	}
	if len(d.Name) < 3 {
		return shared.NewValidationError("name", "min_length", "name must be at least 3 characters long")
	}
	if strings.TrimSpace(d.Description) == "" {
		return shared.NewValidationError("description", "required", "description cannot be empty")
	}
	if strings.TrimSpace(d.Source) == "" {
		return shared.NewValidationError("source", "required", "source cannot be empty")
	}
	if !d.Classification.Valid() {
		return shared.NewValidationError("classification", "enum", "classification must be one of: public, internal, confidential, restricted")
	}
	if !d.Format.Valid() {
		return shared.NewValidationError("format", "enum", "format must be one of: csv, json, xml, parquet, sql, other")
	}
	if d.SizeMB < 0 {
		return shared.NewValidationError("size_mb", "min", "size cannot be negative")
	}
	return nil
}

// Upgrade raises sensitivity one step; a no-op at restricted.
func (d Dataset) Upgrade() Dataset {
	d.Classification = d.Classification.Upgrade()
	return d
}

// Downgrade lowers sensitivity one step; a no-op at public.
func (d Dataset) Downgrade() Dataset {
	d.Classification = d.Classification.Downgrade()
	return d
}

// AccessibleBy applies the classification access matrix for the given role.
func (d Dataset) AccessibleBy(role policy.Role) bool {
	return policy.CanAccessClassification(role, d.Classification)
}
