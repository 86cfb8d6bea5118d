package profile

import (
	"fmt"
	"strconv"

	"github.com/fatih/structs"
	"github.com/glucomate-org/glucomate/errors"
)

// sectionValues flattens a section's UI shape into field-name keyed values
// so validation and the CLI editor can work off the schema alone.
func sectionValues(kind Kind, draft *Draft) map[string]interface{} {
	var section interface{}
	switch kind {
	case KindPersonalInfo:
		section = draft.PersonalInfo
	case KindMedicalHistory:
		section = draft.MedicalHistory
	case KindLifestyle:
		section = draft.Lifestyle
	case KindMonitoring:
		section = draft.Monitoring
	default:
		return nil
	}
	return structs.Map(section)
}

func valueEmpty(value interface{}) bool {
	switch v := value.(type) {
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case nil:
		return true
	default:
		return false
	}
}

func conditionMet(values map[string]interface{}, condition *Condition) bool {
	if condition == nil {
		return false
	}
	switch v := values[condition.Field].(type) {
	case string:
		return v == condition.Equals
	case []string:
		for _, item := range v {
			if item == condition.Equals {
				return true
			}
		}
	}
	return false
}

func requiredNumberPresent(raw interface{}) bool {
	s, ok := raw.(string)
	if !ok || s == "" {
		return false
	}
	value, err := strconv.ParseFloat(s, 64)
	return err == nil && value > 0
}

// MissingCreateFields names the fields the create endpoint requires that
// the draft does not provide. Creation demands a larger minimum field set
// than update, so this runs only before the create fallback.
func MissingCreateFields(kind Kind, draft *Draft) []string {
	schema, ok := SchemaFor(kind)
	if !ok {
		return nil
	}
	values := sectionValues(kind, draft)

	var missing []string
	for _, field := range schema.Fields {
		value := values[field.Name]
		switch {
		case field.Required && field.Type == FieldNumber:
			if !requiredNumberPresent(value) {
				missing = append(missing, field.Name)
			}
		case field.Required:
			if valueEmpty(value) {
				missing = append(missing, field.Name)
			}
		case field.RequiredWhen != nil:
			if conditionMet(values, field.RequiredWhen) && valueEmpty(value) {
				missing = append(missing, field.Name)
			}
		}
	}
	return missing
}

// ValidateDraftSection checks a section draft against its schema: option
// membership for selects and numeric syntax for number fields. Empty
// optional values always pass.
func ValidateDraftSection(kind Kind, draft *Draft) error {
	schema, ok := SchemaFor(kind)
	if !ok {
		return fmt.Errorf("unknown section %q: %w", kind, errors.BadRequest.Err)
	}
	values := sectionValues(kind, draft)

	for _, field := range schema.Fields {
		raw, ok := values[field.Name].(string)
		if !ok || raw == "" {
			continue
		}
		switch field.Type {
		case FieldNumber:
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				return fmt.Errorf("%s must be a number: %w", field.Name, errors.BadRequest.Err)
			}
		case FieldSelect, FieldYesNo:
			if field.Options != nil && !field.Options.Contains(raw) {
				return fmt.Errorf("%s: %q is not a valid choice: %w", field.Name, raw, errors.BadRequest.Err)
			}
		}
	}
	return nil
}
