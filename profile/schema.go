package profile

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// The four intake pages are driven by one declarative schema per section
// instead of per-page logic. The schema feeds pre-flight validation and the
// CLI editor prompts.

type FieldType int

const (
	FieldText FieldType = iota
	FieldNumber
	FieldYesNo
	FieldSelect
	FieldList
)

// Field describes one form control of a section.
//
// Required marks the fields the create endpoint demands; update tolerates
// their absence. RequiredWhen gates companion fields on a controlling
// answer ("yes" gates insulin details, and so on).
type Field struct {
	Name         string
	Label        string
	Type         FieldType
	Options      mapset.Set[string]
	Required     bool
	RequiredWhen *Condition
}

type Condition struct {
	Field  string
	Equals string
}

type Schema struct {
	Kind Kind
	// OmitEmptyOnUpdate selects the update discipline for the section:
	// true drops unset optional fields from the payload, false sends the
	// whole record with explicit zero values.
	OmitEmptyOnUpdate bool
	Fields            []Field
}

func yesNoSet() mapset.Set[string] {
	return mapset.NewSet("yes", "no")
}

var personalInfoSchema = Schema{
	Kind:              KindPersonalInfo,
	OmitEmptyOnUpdate: true,
	Fields: []Field{
		{Name: "age", Label: "Age", Type: FieldNumber, Required: true},
		{Name: "height", Label: "Height", Type: FieldNumber, Required: true},
		{Name: "heightUnit", Label: "Height unit", Type: FieldSelect, Options: mapset.NewSet(UnitCentimeters, UnitFeetInches)},
		{Name: "weight", Label: "Weight", Type: FieldNumber, Required: true},
		{Name: "weightUnit", Label: "Weight unit", Type: FieldSelect, Options: mapset.NewSet(UnitKilograms, UnitPounds)},
		{Name: "gender", Label: "Gender", Type: FieldSelect, Required: true, Options: mapset.NewSet("male", "female", "non-binary", "prefer-not-say", "other")},
		{Name: "diabetesType", Label: "Diabetes type", Type: FieldSelect, Required: true, Options: mapset.NewSet("type1", "type2", "gestational", "other")},
		{Name: "diagnosisYear", Label: "Year of diagnosis", Type: FieldNumber, Required: true},
	},
}

var medicalHistorySchema = Schema{
	Kind:              KindMedicalHistory,
	OmitEmptyOnUpdate: true,
	Fields: []Field{
		{Name: "medicalConditions", Label: "Medical conditions", Type: FieldList},
		{Name: "otherCondition", Label: "Other condition", Type: FieldText, RequiredWhen: &Condition{Field: "medicalConditions", Equals: "Other"}},
		{Name: "familyHeartDisease", Label: "Family history of heart disease", Type: FieldYesNo, Required: true, Options: yesNoSet()},
		{Name: "familyMember", Label: "Family member", Type: FieldText, RequiredWhen: &Condition{Field: "familyHeartDisease", Equals: "yes"}},
		{Name: "takingInsulin", Label: "Currently taking insulin", Type: FieldYesNo, Required: true, Options: yesNoSet()},
		{Name: "insulinType", Label: "Insulin type", Type: FieldText, RequiredWhen: &Condition{Field: "takingInsulin", Equals: "yes"}},
		{Name: "insulinDosage", Label: "Insulin dosage", Type: FieldText, RequiredWhen: &Condition{Field: "takingInsulin", Equals: "yes"}},
		{Name: "insulinSchedule", Label: "Insulin schedule", Type: FieldText, RequiredWhen: &Condition{Field: "takingInsulin", Equals: "yes"}},
		{Name: "allergies", Label: "Allergies", Type: FieldList},
	},
}

var lifestyleSchema = Schema{
	Kind:              KindLifestyle,
	OmitEmptyOnUpdate: false,
	Fields: []Field{
		{Name: "smokingStatus", Label: "Smoking status", Type: FieldSelect, Required: true, Options: mapset.NewSet("never", "former", "current")},
		{Name: "alcoholConsumption", Label: "Alcohol consumption", Type: FieldSelect, Required: true, Options: mapset.NewSet("never", "occasionally", "occasional", "moderate", "frequently", "heavy")},
		{Name: "exerciseFrequency", Label: "Exercise frequency", Type: FieldSelect, Required: true, Options: mapset.NewSet("sedentary", "light", "moderate", "active", "never", "1-2_times_weekly", "3-4_times_weekly", "daily")},
	},
}

var monitoringSchema = Schema{
	Kind:              KindMonitoring,
	OmitEmptyOnUpdate: false,
	Fields: []Field{
		{Name: "bloodSugarMonitoring", Label: "Blood sugar monitoring", Type: FieldSelect, Required: true, Options: mapset.NewSet("never", "occasionally", "once_daily", "multiple_daily", "1-2_times_daily", "3-4_times_daily", "more_than_4_times")},
		{Name: "hba1cReading", Label: "HbA1c reading (%)", Type: FieldNumber},
		{Name: "usesCGM", Label: "Uses CGM", Type: FieldYesNo, Required: true, Options: yesNoSet()},
		{Name: "cgmFrequency", Label: "CGM check frequency", Type: FieldText, RequiredWhen: &Condition{Field: "usesCGM", Equals: "yes"}},
		{Name: "frequentHypoglycemia", Label: "Frequent hypoglycemia", Type: FieldYesNo, Required: true, Options: yesNoSet()},
		{Name: "hypoglycemiaFrequency", Label: "Hypoglycemia frequency", Type: FieldText, RequiredWhen: &Condition{Field: "frequentHypoglycemia", Equals: "yes"}},
	},
}

var schemas = map[Kind]Schema{
	KindPersonalInfo:   personalInfoSchema,
	KindMedicalHistory: medicalHistorySchema,
	KindLifestyle:      lifestyleSchema,
	KindMonitoring:     monitoringSchema,
}

func SchemaFor(kind Kind) (Schema, bool) {
	schema, ok := schemas[kind]
	return schema, ok
}
