package fsregister

import "fmt"

// DefaultBaseURL is the production FS Register API base URL.
const DefaultBaseURL = "https://register.fca.org.uk/services/V0.1"

// ResourceType identifies the kind of register resource a search or
// lookup targets.
type ResourceType string

const (
	// ResourceTypeFirm represents an authorised firm (FRN-keyed)
	ResourceTypeFirm ResourceType = "firm"
	// ResourceTypeIndividual represents an approved individual (IRN-keyed)
	ResourceTypeIndividual ResourceType = "individual"
	// ResourceTypeFund represents a collective investment scheme (PRN-keyed)
	ResourceTypeFund ResourceType = "fund"
)

// Valid reports whether rt is one of the three supported resource types.
func (rt ResourceType) Valid() bool {
	switch rt {
	case ResourceTypeFirm, ResourceTypeIndividual, ResourceTypeFund:
		return true
	}
	return false
}

// String returns the search-parameter form of the resource type.
func (rt ResourceType) String() string {
	return string(rt)
}

// endpointSegment returns the URL path segment the API uses for this
// resource type.
func (rt ResourceType) endpointSegment() string {
	switch rt {
	case ResourceTypeFirm:
		return "Firm"
	case ResourceTypeIndividual:
		return "Individuals"
	case ResourceTypeFund:
		return "CIS"
	}
	return ""
}

// ParseResourceType converts a string into a ResourceType, returning
// ErrInvalidResourceType for anything other than the three supported
// values.
func ParseResourceType(s string) (ResourceType, error) {
	rt := ResourceType(s)
	if !rt.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidResourceType)
	}
	return rt, nil
}

// Record is a single register record as returned by the API. Record
// schemas vary by resource type and endpoint; the client passes them
// through unvalidated.
type Record map[string]any

// String returns the record field for key as a string, or "" if the
// field is absent or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// ReferenceNumber returns the record's "Reference Number" field, the
// FRN/IRN/PRN depending on resource type.
func (r Record) ReferenceNumber() string {
	return r.String("Reference Number")
}

// envelope is the fixed outer JSON object wrapping every API response.
type envelope struct {
	Status     string         `json:"Status"`
	ResultInfo map[string]any `json:"ResultInfo"`
	Message    string         `json:"Message"`
	Data       []Record       `json:"Data"`
}
