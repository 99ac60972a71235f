package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// storeManaged columns are never accepted from a client payload.
var storeManaged = map[string]bool{
	ColumnID:        true,
	ColumnUserID:    true,
	ColumnCreatedAt: true,
	ColumnUpdatedAt: true,
}

// DecodePayload turns a create payload into a typed record.
// Store-managed keys are dropped, defaults filled and every field checked
// against the collection's descriptor before anything reaches the store.
func DecodePayload(kind Kind, raw []byte) (Record, error) {
	d, err := Lookup(kind)
	if err != nil {
		return nil, err
	}

	fields, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	for key := range fields {
		if storeManaged[key] {
			delete(fields, key)
		}
	}

	for _, f := range d.Fields {
		if f.Default == "" {
			continue
		}
		switch v := fields[f.Name].(type) {
		case nil:
			fields[f.Name] = f.Default
		case string:
			if strings.TrimSpace(v) == "" {
				fields[f.Name] = f.Default
			}
		}
	}

	if err := validateFields(d, fields, true); err != nil {
		return nil, err
	}
	return buildRecord(d, fields)
}

// ValidateRecord checks a typed record against its descriptor.
func ValidateRecord(rec Record) error {
	d, err := Lookup(rec.Kind())
	if err != nil {
		return err
	}
	fields, err := Fields(rec)
	if err != nil {
		return err
	}
	delete(fields, ColumnUserID)
	return validateFields(d, fields, true)
}

// NormalizePatch validates a partial update and returns it with plain JSON
// value types (string, float64, []any, map[string]any, nil).
func NormalizePatch(kind Kind, patch map[string]any) (map[string]any, error) {
	d, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return nil, &ValidationError{Reason: "update carries no fields"}
	}

	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, &ValidationError{Reason: "patch is not JSON encodable: " + err.Error()}
	}
	normalized, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	for key := range normalized {
		if storeManaged[key] {
			return nil, &ValidationError{Field: key, Reason: "is read-only"}
		}
	}
	if err := validateFields(d, normalized, false); err != nil {
		return nil, err
	}
	// columns are NOT NULL, so clearing an optional field stores its zero value
	for key, v := range normalized {
		if v == nil {
			f, _ := d.Field(key)
			normalized[key] = zeroValue(f.Type)
		}
	}
	return normalized, nil
}

func zeroValue(t FieldType) any {
	switch t {
	case FieldNumber, FieldInteger:
		return float64(0)
	case FieldStringList, FieldNumberList, FieldUpsellList:
		return []any{}
	default:
		return ""
	}
}

// Fields returns the record's columns without id and timestamps.
func Fields(rec Record) (map[string]any, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s record: %w", rec.Kind(), err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode %s record: %w", rec.Kind(), err)
	}
	delete(m, ColumnID)
	delete(m, ColumnCreatedAt)
	delete(m, ColumnUpdatedAt)
	return m, nil
}

// Decode unmarshals a stored row (as JSON) into the typed record for kind.
func Decode(kind Kind, raw []byte) (Record, error) {
	d, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	rec := d.New()
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s row: %w", kind, err)
	}
	return rec, nil
}

func buildRecord(d *Descriptor, fields map[string]any) (Record, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	rec := d.New()
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	return rec, nil
}

func decodeObject(raw []byte) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, &ValidationError{Reason: "body is empty"}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &ValidationError{Reason: "body must be a JSON object"}
	}
	if m == nil {
		return nil, &ValidationError{Reason: "body must be a JSON object"}
	}
	return m, nil
}

// validateFields checks present values; complete also demands required ones.
func validateFields(d *Descriptor, fields map[string]any, complete bool) error {
	for key := range fields {
		if _, ok := d.Field(key); !ok {
			return &ValidationError{Field: key, Reason: "is not a field of " + string(d.Kind)}
		}
	}
	for _, f := range d.Fields {
		v, present := fields[f.Name]
		if !present || v == nil {
			if f.Required && (complete || present) {
				return &ValidationError{Field: f.Name, Reason: "is required"}
			}
			continue
		}
		if err := checkValue(f, v); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(f Field, v any) error {
	switch f.Type {
	case FieldString:
		s, ok := v.(string)
		if !ok {
			return &ValidationError{Field: f.Name, Reason: "must be a string"}
		}
		return checkString(f, s)
	case FieldNumber:
		if _, ok := v.(float64); !ok {
			return &ValidationError{Field: f.Name, Reason: "must be a number"}
		}
	case FieldInteger:
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) {
			return &ValidationError{Field: f.Name, Reason: "must be an integer"}
		}
		if n > math.MaxInt32 || n < math.MinInt32 {
			return &ValidationError{Field: f.Name, Reason: "is out of range"}
		}
	case FieldDate:
		return checkLayout(f, v, "2006-01-02", "a YYYY-MM-DD date")
	case FieldTime:
		return checkLayout(f, v, "15:04", "an HH:MM time")
	case FieldStringList:
		items, ok := v.([]any)
		if !ok {
			return &ValidationError{Field: f.Name, Reason: "must be a list of strings"}
		}
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return &ValidationError{Field: f.Name, Reason: "must be a list of strings"}
			}
		}
	case FieldNumberList:
		items, ok := v.([]any)
		if !ok {
			return &ValidationError{Field: f.Name, Reason: "must be a list of numbers"}
		}
		for _, item := range items {
			if _, ok := item.(float64); !ok {
				return &ValidationError{Field: f.Name, Reason: "must be a list of numbers"}
			}
		}
	case FieldUpsellList:
		return checkUpsells(f, v)
	}
	return nil
}

func checkString(f Field, s string) error {
	if strings.TrimSpace(s) == "" {
		if f.Required {
			return &ValidationError{Field: f.Name, Reason: "is required"}
		}
		return nil
	}
	if len(f.Enum) > 0 && !contains(f.Enum, s) {
		return &ValidationError{Field: f.Name, Reason: "must be one of: " + strings.Join(f.Enum, ", ")}
	}
	return nil
}

func checkLayout(f Field, v any, layout, what string) error {
	s, ok := v.(string)
	if !ok {
		return &ValidationError{Field: f.Name, Reason: "must be " + what}
	}
	if s == "" {
		if f.Required {
			return &ValidationError{Field: f.Name, Reason: "is required"}
		}
		return nil
	}
	if _, err := time.Parse(layout, s); err != nil {
		return &ValidationError{Field: f.Name, Reason: "must be " + what}
	}
	return nil
}

func checkUpsells(f Field, v any) error {
	items, ok := v.([]any)
	if !ok {
		return &ValidationError{Field: f.Name, Reason: "must be a list of {service, priority, value}"}
	}
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return &ValidationError{Field: fmt.Sprintf("%s[%d]", f.Name, i), Reason: "must be an object"}
		}
		for key := range entry {
			if key != "service" && key != "priority" && key != "value" {
				return &ValidationError{Field: fmt.Sprintf("%s[%d].%s", f.Name, i, key), Reason: "is not allowed"}
			}
		}
		if s, _ := entry["service"].(string); strings.TrimSpace(s) == "" {
			return &ValidationError{Field: fmt.Sprintf("%s[%d].service", f.Name, i), Reason: "is required"}
		}
		if p, _ := entry["priority"].(string); !contains(priorityEnum, p) {
			return &ValidationError{
				Field:  fmt.Sprintf("%s[%d].priority", f.Name, i),
				Reason: "must be one of: " + strings.Join(priorityEnum, ", "),
			}
		}
		if val, present := entry["value"]; present && val != nil {
			if _, ok := val.(float64); !ok {
				return &ValidationError{Field: fmt.Sprintf("%s[%d].value", f.Name, i), Reason: "must be a number"}
			}
		}
	}
	return nil
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
