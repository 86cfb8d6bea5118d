package profile

import (
	"strconv"
	"strings"
	"time"

	"github.com/glucomate-org/glucomate/errors"
	"github.com/glucomate-org/glucomate/pointer"
)

// Server shapes. Update payloads for personalinfo and medicalhistory omit
// unset optional fields; lifestylehabits and monitoringinfo replace the
// whole record, matching each endpoint's contract (see schema.go).

type PersonalInfoPayload struct {
	Gender        *string  `json:"gender,omitempty"`
	DiabetesType  *string  `json:"diabetesType,omitempty"`
	DiagnosisYear *int     `json:"diagnosisYear,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	HeightUnit    string   `json:"heightUnit"`
	Weight        *float64 `json:"weight,omitempty"`
	WeightUnit    string   `json:"weightUnit"`
	BirthYear     *int     `json:"birthYear,omitempty"`
	BirthMonth    *int     `json:"birthMonth,omitempty"`
	BirthDay      *int     `json:"birthDay,omitempty"`
}

type PersonalInfoCreate struct {
	BirthYear     int     `json:"birthYear"`
	BirthMonth    int     `json:"birthMonth"`
	BirthDay      int     `json:"birthDay"`
	Gender        string  `json:"gender"`
	Height        float64 `json:"height"`
	HeightUnit    string  `json:"heightUnit"`
	Weight        float64 `json:"weight"`
	WeightUnit    string  `json:"weightUnit"`
	DiabetesType  string  `json:"diabetesType"`
	DiagnosisYear int     `json:"diagnosisYear"`
}

type MedicalHistoryPayload struct {
	MedicalConditions  []string `json:"medicalConditions"`
	OtherCondition     *string  `json:"otherCondition,omitempty"`
	FamilyHeartDisease bool     `json:"familyHeartDisease"`
	FamilyMember       *string  `json:"familyMember,omitempty"`
	TakingInsulin      bool     `json:"takingInsulin"`
	InsulinType        *string  `json:"insulinType,omitempty"`
	InsulinDosage      *string  `json:"insulinDosage,omitempty"`
	InsulinSchedule    *string  `json:"insulinSchedule,omitempty"`
	Allergies          []string `json:"allergies"`
}

type LifestylePayload struct {
	SmokingStatus      string `json:"smokingStatus"`
	AlcoholConsumption string `json:"alcoholConsumption"`
	ExerciseFrequency  string `json:"exerciseFrequency"`
}

type MonitoringPayload struct {
	BloodSugarMonitoring  string         `json:"bloodSugarMonitoring"`
	Hba1cReading          OptionalNumber `json:"hba1cReading"`
	UsesCGM               bool           `json:"usesCGM"`
	CGMFrequency          string         `json:"cgmFrequency"`
	FrequentHypoglycemia  bool           `json:"frequentHypoglycemia"`
	HypoglycemiaFrequency string         `json:"hypoglycemiaFrequency"`
}

// parseNumber treats empty and unparseable input as unset.
func parseNumber(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

func parseYear(raw string) *int {
	value := parseNumber(raw)
	if value == nil {
		return nil
	}
	return pointer.FromAny(int(*value))
}

func optionalString(raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return &raw
}

// SplitList turns comma-joined form input into a trimmed list, dropping
// empty entries.
func SplitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// birthDateFromAge derives date-of-birth components the create endpoint
// requires from the precomputed age the UI holds. Month and day are not
// recoverable and are pinned to January 1st.
func birthDateFromAge(age string, now time.Time) (year, month, day int, ok bool) {
	value := parseNumber(age)
	if value == nil || *value <= 0 {
		return 0, 0, 0, false
	}
	return now.Year() - int(*value), 1, 1, true
}

func personalInfoUpdatePayload(p PersonalInfo, now time.Time) *PersonalInfoPayload {
	payload := &PersonalInfoPayload{
		Gender:        optionalString(p.Gender),
		DiabetesType:  optionalString(p.DiabetesType),
		DiagnosisYear: parseYear(p.DiagnosisYear),
		HeightUnit:    UnitCentimeters,
		WeightUnit:    UnitKilograms,
	}
	if height := parseNumber(p.Height); height != nil {
		payload.Height = pointer.FromAny(NormalizeHeight(*height, p.HeightUnit))
	}
	if weight := parseNumber(p.Weight); weight != nil {
		payload.Weight = pointer.FromAny(NormalizeWeight(*weight, p.WeightUnit))
	}
	if year, month, day, ok := birthDateFromAge(p.Age, now); ok {
		payload.BirthYear = &year
		payload.BirthMonth = &month
		payload.BirthDay = &day
	}
	return payload
}

func personalInfoCreatePayload(p PersonalInfo, now time.Time) *PersonalInfoCreate {
	year, month, day, _ := birthDateFromAge(p.Age, now)
	return &PersonalInfoCreate{
		BirthYear:     year,
		BirthMonth:    month,
		BirthDay:      day,
		Gender:        p.Gender,
		Height:        NormalizeHeight(pointer.ToFloat64(parseNumber(p.Height)), p.HeightUnit),
		HeightUnit:    UnitCentimeters,
		Weight:        NormalizeWeight(pointer.ToFloat64(parseNumber(p.Weight)), p.WeightUnit),
		WeightUnit:    UnitKilograms,
		DiabetesType:  p.DiabetesType,
		DiagnosisYear: int(pointer.ToFloat64(parseNumber(p.DiagnosisYear))),
	}
}

func medicalHistoryPayload(m MedicalHistory) *MedicalHistoryPayload {
	return &MedicalHistoryPayload{
		MedicalConditions:  append([]string{}, m.MedicalConditions...),
		OtherCondition:     optionalString(m.OtherCondition),
		FamilyHeartDisease: m.FamilyHeartDisease == "yes",
		FamilyMember:       optionalString(m.FamilyMember),
		TakingInsulin:      m.TakingInsulin == "yes",
		InsulinType:        optionalString(m.InsulinType),
		InsulinDosage:      optionalString(m.InsulinDosage),
		InsulinSchedule:    optionalString(m.InsulinSchedule),
		Allergies:          append([]string{}, m.Allergies...),
	}
}

// medicalHistoryCreatePayload drops otherCondition; the create controller
// does not accept it.
func medicalHistoryCreatePayload(m MedicalHistory) *MedicalHistoryPayload {
	payload := medicalHistoryPayload(m)
	payload.OtherCondition = nil
	return payload
}

func lifestylePayload(l Lifestyle) *LifestylePayload {
	return &LifestylePayload{
		SmokingStatus:      l.SmokingStatus,
		AlcoholConsumption: l.AlcoholConsumption,
		ExerciseFrequency:  l.ExerciseFrequency,
	}
}

func monitoringPayload(m Monitoring) *MonitoringPayload {
	payload := &MonitoringPayload{
		BloodSugarMonitoring: m.BloodSugarMonitoring,
		UsesCGM:              m.UsesCGM == "yes",
		FrequentHypoglycemia: m.FrequentHypoglycemia == "yes",
	}
	if reading := parseNumber(m.Hba1cReading); reading != nil {
		payload.Hba1cReading = OptionalNumber{Value: *reading, Set: true}
	}
	// Companion frequencies only travel when their gate answer is yes.
	if payload.UsesCGM {
		payload.CGMFrequency = m.CGMFrequency
	}
	if payload.FrequentHypoglycemia {
		payload.HypoglycemiaFrequency = m.HypoglycemiaFrequency
	}
	return payload
}

// BuildUpdatePayload transforms a section's UI draft into the server shape
// the update endpoint expects.
func BuildUpdatePayload(kind Kind, draft *Draft) (interface{}, error) {
	switch kind {
	case KindPersonalInfo:
		return personalInfoUpdatePayload(draft.PersonalInfo, time.Now()), nil
	case KindMedicalHistory:
		return medicalHistoryPayload(draft.MedicalHistory), nil
	case KindLifestyle:
		return lifestylePayload(draft.Lifestyle), nil
	case KindMonitoring:
		return monitoringPayload(draft.Monitoring), nil
	}
	return nil, errors.BadRequest
}

// BuildCreatePayload transforms a section's UI draft into the stricter
// create shape, failing locally when the required field set is incomplete.
func BuildCreatePayload(kind Kind, draft *Draft) (interface{}, error) {
	if missing := MissingCreateFields(kind, draft); len(missing) > 0 {
		return nil, errors.MissingFields(missing...)
	}

	switch kind {
	case KindPersonalInfo:
		return personalInfoCreatePayload(draft.PersonalInfo, time.Now()), nil
	case KindMedicalHistory:
		return medicalHistoryCreatePayload(draft.MedicalHistory), nil
	case KindLifestyle:
		return lifestylePayload(draft.Lifestyle), nil
	case KindMonitoring:
		return monitoringPayload(draft.Monitoring), nil
	}
	return nil, errors.BadRequest
}
