package types

import "fmt"

// SchemaVariant identifies a named incident field-set variant. The
// required field set of an incident payload has changed across
// deployments, so the active variant is selected by configuration.
type SchemaVariant string

const (
	// SchemaVariantClassic is the original seven-field incident form
	SchemaVariantClassic SchemaVariant = "classic"
	// SchemaVariantClickstream is the later telemetry-enriched form
	SchemaVariantClickstream SchemaVariant = "clickstream"
)

// AllSchemaVariants returns all known schema variants
func AllSchemaVariants() []SchemaVariant {
	return []SchemaVariant{
		SchemaVariantClassic,
		SchemaVariantClickstream,
	}
}

// IsValid checks if the schema variant is known
func (v SchemaVariant) IsValid() bool {
	switch v {
	case SchemaVariantClassic,
		SchemaVariantClickstream:
		return true
	default:
		return false
	}
}

// Normalize returns the variant, treating empty as SchemaVariantClassic.
func (v SchemaVariant) Normalize() SchemaVariant {
	if v == "" {
		return SchemaVariantClassic
	}
	return v
}

// RequiredFields returns the ordered list of required payload fields
// for the variant. Missing-field validation reports the first absent
// field in this order.
func (v SchemaVariant) RequiredFields() []string {
	switch v.Normalize() {
	case SchemaVariantClickstream:
		return []string{
			"short_description",
			"description",
			"category",
			"impact",
			"urgency",
			"u_version",
			"u_correlation_id",
		}
	default:
		return []string{
			"short_description",
			"description",
			"urgency",
			"impact",
			"caller_id",
			"category",
			"assignment_group",
		}
	}
}

// String returns the string representation of the schema variant
func (v SchemaVariant) String() string {
	return string(v)
}

// ParseSchemaVariant parses a string into a SchemaVariant
func ParseSchemaVariant(s string) (SchemaVariant, error) {
	v := SchemaVariant(s)
	if !v.IsValid() {
		return "", fmt.Errorf("invalid schema variant: %s", s)
	}
	return v, nil
}
