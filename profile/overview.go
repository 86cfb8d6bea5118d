package profile

import (
	"strconv"
	"time"
)

// The overview endpoint has grown inconsistent key casing over time
// (firstName/first_name, heightCm/height). Normalization tolerates every
// spelling the backend has used and produces clean UI shapes.

func child(m map[string]interface{}, keys ...string) map[string]interface{} {
	for _, key := range keys {
		if nested, ok := m[key].(map[string]interface{}); ok {
			return nested
		}
	}
	return map[string]interface{}{}
}

func pickString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return formatNumber(v)
		}
	}
	return ""
}

// pickYesNo maps server booleans onto the yes/no strings the form binds
// to, passing already-string values through.
func pickYesNo(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case bool:
			if v {
				return "yes"
			}
			return "no"
		case string:
			if v != "" {
				return v
			}
		}
	}
	return ""
}

func pickStringList(m map[string]interface{}, keys ...string) []string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case []interface{}:
			items := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					items = append(items, s)
				}
			}
			return items
		case []string:
			return v
		}
	}
	return []string{}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var birthDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// AgeFromBirthDate computes whole years between the date of birth and now,
// the way the profile page displays age. Unparseable input yields "".
func AgeFromBirthDate(raw string, now time.Time) string {
	if raw == "" {
		return ""
	}
	var dob time.Time
	var err error
	for _, layout := range birthDateLayouts {
		if dob, err = time.Parse(layout, raw); err == nil {
			break
		}
	}
	if err != nil {
		return ""
	}

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return strconv.Itoa(age)
}

// NormalizeOverview maps the raw overview document onto the aggregate in
// UI shape. Unset fields come out as empty strings or empty lists.
func NormalizeOverview(data map[string]interface{}, now time.Time) *Aggregate {
	user := child(data, "user")
	personal := child(data, "personalInfo", "personal_info")
	history := child(data, "medicalHistory", "medical_history")
	lifestyle := child(data, "lifestyle")
	monitoring := child(data, "monitoring")

	aggregate := &Aggregate{
		User: User{
			ID:        pickString(user, "id"),
			FirstName: pickString(user, "first_name", "firstName"),
			LastName:  pickString(user, "last_name", "lastName"),
			Email:     pickString(user, "email"),
		},
		Sections: Draft{
			PersonalInfo: PersonalInfo{
				Age:           AgeFromBirthDate(pickString(personal, "dateOfBirth", "date_of_birth"), now),
				Height:        pickString(personal, "heightCm", "height"),
				HeightUnit:    UnitCentimeters,
				Weight:        pickString(personal, "weightKg", "weight"),
				WeightUnit:    UnitKilograms,
				Gender:        pickString(personal, "gender"),
				DiabetesType:  pickString(personal, "diabetesType", "diabetes_type"),
				DiagnosisYear: pickString(personal, "diagnosisYear", "diagnosis_year"),
			},
			MedicalHistory: MedicalHistory{
				MedicalConditions:  pickStringList(history, "medicalConditions", "conditionCatalog"),
				OtherCondition:     pickString(history, "otherCondition"),
				FamilyHeartDisease: pickYesNo(history, "familyHeartDisease"),
				FamilyMember:       pickString(history, "familyMember"),
				TakingInsulin:      pickYesNo(history, "takingInsulin"),
				InsulinType:        pickString(history, "insulinType"),
				InsulinDosage:      pickString(history, "insulinDosage"),
				InsulinSchedule:    pickString(history, "insulinSchedule"),
				Allergies:          pickStringList(history, "allergies"),
			},
			Lifestyle: Lifestyle{
				SmokingStatus:      pickString(lifestyle, "smokingStatus"),
				AlcoholConsumption: pickString(lifestyle, "alcoholConsumption"),
				ExerciseFrequency:  pickString(lifestyle, "exerciseFrequency"),
			},
			Monitoring: Monitoring{
				BloodSugarMonitoring:  pickString(monitoring, "bloodSugarMonitoring", "glucose_frequency"),
				Hba1cReading:          pickString(monitoring, "hba1cReading", "latestHba1cPercent", "latest_hba1c_percent"),
				UsesCGM:               pickYesNo(monitoring, "usesCGM"),
				CGMFrequency:          pickString(monitoring, "cgmFrequency"),
				FrequentHypoglycemia:  pickYesNo(monitoring, "frequentHypoglycemia"),
				HypoglycemiaFrequency: pickString(monitoring, "hypoglycemiaFrequency"),
			},
		},
	}
	return aggregate
}
