// Package docstore implements the JSONB-backed document collections that
// hold every entity kind, along with the response serializer and timestamp
// parsing shared by all domains.
package docstore

import (
	"time"

	"github.com/google/uuid"
)

// Document is a schemaless record. Field names follow the API payloads
// (employeeId, coveragePlan, serviceDate, ...). The reserved keys "id",
// "createdAt" and "updatedAt" are owned by the store: they are injected on
// read and stripped from incoming payloads before writes.
type Document map[string]interface{}

var reservedKeys = []string{"id", "createdAt", "updatedAt"}

// StripReserved removes store-owned keys from a payload in place and
// returns it. Callers cannot overwrite identifiers or timestamps through
// create or update payloads.
func StripReserved(doc Document) Document {
	for _, k := range reservedKeys {
		delete(doc, k)
	}
	return doc
}

// Normalize walks an arbitrarily nested structure of maps, slices and
// scalars, converting opaque identifiers to their string form and
// timestamps to ISO-8601 text. Maps are mutated in place; the (possibly
// replaced) value is returned. Unrecognized types pass through unchanged.
func Normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case Document:
		for k, inner := range val {
			val[k] = Normalize(inner)
		}
		return val
	case map[string]interface{}:
		for k, inner := range val {
			val[k] = Normalize(inner)
		}
		return val
	case []Document:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = Normalize(inner)
		}
		return out
	case []interface{}:
		for i, inner := range val {
			val[i] = Normalize(inner)
		}
		return val
	case uuid.UUID:
		return val.String()
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return v
	}
}

// timestampLayouts are tried in order when parsing date-valued input text.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses date-valued input text into a UTC instant.
// Malformed text is an invalid-input error.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, Invalidf("invalid date value: %q", s)
}

// NormalizeDateField parses doc[field] when it is supplied as text and
// replaces it with the canonical ISO-8601 form. Absent fields and
// non-string values are left alone.
func NormalizeDateField(doc Document, field string) error {
	raw, ok := doc[field]
	if !ok {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	doc[field] = t.Format(time.RFC3339)
	return nil
}
