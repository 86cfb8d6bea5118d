package profile

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind identifies one of the four independent profile sections. The values
// are the path segments the remote store uses.
type Kind string

const (
	KindPersonalInfo   Kind = "personalinfo"
	KindMedicalHistory Kind = "medicalhistory"
	KindLifestyle      Kind = "lifestylehabits"
	KindMonitoring     Kind = "monitoringinfo"
)

func Kinds() []Kind {
	return []Kind{KindPersonalInfo, KindMedicalHistory, KindLifestyle, KindMonitoring}
}

// UI shapes are string-typed so they can bind directly to form controls.
// Unset fields are empty strings or empty lists, never null.

type PersonalInfo struct {
	Age           string `json:"age" structs:"age"`
	Height        string `json:"height" structs:"height"`
	HeightUnit    string `json:"heightUnit" structs:"heightUnit"`
	Weight        string `json:"weight" structs:"weight"`
	WeightUnit    string `json:"weightUnit" structs:"weightUnit"`
	Gender        string `json:"gender" structs:"gender"`
	DiabetesType  string `json:"diabetesType" structs:"diabetesType"`
	DiagnosisYear string `json:"diagnosisYear" structs:"diagnosisYear"`
}

type MedicalHistory struct {
	MedicalConditions  []string `json:"medicalConditions" structs:"medicalConditions"`
	OtherCondition     string   `json:"otherCondition" structs:"otherCondition"`
	FamilyHeartDisease string   `json:"familyHeartDisease" structs:"familyHeartDisease"`
	FamilyMember       string   `json:"familyMember" structs:"familyMember"`
	TakingInsulin      string   `json:"takingInsulin" structs:"takingInsulin"`
	InsulinType        string   `json:"insulinType" structs:"insulinType"`
	InsulinDosage      string   `json:"insulinDosage" structs:"insulinDosage"`
	InsulinSchedule    string   `json:"insulinSchedule" structs:"insulinSchedule"`
	Allergies          []string `json:"allergies" structs:"allergies"`
}

type Lifestyle struct {
	SmokingStatus      string `json:"smokingStatus" structs:"smokingStatus"`
	AlcoholConsumption string `json:"alcoholConsumption" structs:"alcoholConsumption"`
	ExerciseFrequency  string `json:"exerciseFrequency" structs:"exerciseFrequency"`
}

type Monitoring struct {
	BloodSugarMonitoring  string `json:"bloodSugarMonitoring" structs:"bloodSugarMonitoring"`
	Hba1cReading          string `json:"hba1cReading" structs:"hba1cReading"`
	UsesCGM               string `json:"usesCGM" structs:"usesCGM"`
	CGMFrequency          string `json:"cgmFrequency" structs:"cgmFrequency"`
	FrequentHypoglycemia  string `json:"frequentHypoglycemia" structs:"frequentHypoglycemia"`
	HypoglycemiaFrequency string `json:"hypoglycemiaFrequency" structs:"hypoglycemiaFrequency"`
}

// Draft bundles the editable UI shapes of all four sections.
type Draft struct {
	PersonalInfo   PersonalInfo   `json:"personalInfo" structs:"personalInfo"`
	MedicalHistory MedicalHistory `json:"medicalHistory" structs:"medicalHistory"`
	Lifestyle      Lifestyle      `json:"lifestyle" structs:"lifestyle"`
	Monitoring     Monitoring     `json:"monitoring" structs:"monitoring"`
}

type User struct {
	ID        string `json:"id" structs:"id"`
	FirstName string `json:"firstName" structs:"firstName"`
	LastName  string `json:"lastName" structs:"lastName"`
	Email     string `json:"email" structs:"email"`
}

// Aggregate is everything one profile page shows: basic identity plus the
// four sections in UI shape.
type Aggregate struct {
	User     User  `json:"user" structs:"user"`
	Sections Draft `json:"sections" structs:"sections"`
}

func NewDraft() Draft {
	return Draft{
		PersonalInfo: PersonalInfo{
			HeightUnit: UnitCentimeters,
			WeightUnit: UnitKilograms,
		},
		MedicalHistory: MedicalHistory{
			MedicalConditions: []string{},
			Allergies:         []string{},
		},
	}
}

// OptionalNumber marshals as a number when set and as an empty string when
// unset. The monitoring contract overwrites fields on update instead of
// omitting them, and represents "no reading" as "".
type OptionalNumber struct {
	Value float64
	Set   bool
}

func (n OptionalNumber) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte(`""`), nil
	}
	return json.Marshal(n.Value)
}

func (n *OptionalNumber) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == `""` || string(trimmed) == "null" {
		*n = OptionalNumber{}
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		value, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*n = OptionalNumber{}
			return nil
		}
		*n = OptionalNumber{Value: value, Set: true}
		return nil
	}
	var value float64
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return err
	}
	*n = OptionalNumber{Value: value, Set: true}
	return nil
}
