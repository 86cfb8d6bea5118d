package test

import (
	"strconv"

	"github.com/glucomate-org/glucomate/profile"
	"github.com/glucomate-org/glucomate/test"
)

var conditions = []string{"Hypertension", "High cholesterol", "Kidney disease", "Neuropathy", "Retinopathy"}

func RandomPersonalInfo() profile.PersonalInfo {
	return profile.PersonalInfo{
		Age:           strconv.Itoa(test.Faker.IntBetween(18, 90)),
		Height:        strconv.Itoa(test.Faker.IntBetween(140, 200)),
		HeightUnit:    profile.UnitCentimeters,
		Weight:        strconv.Itoa(test.Faker.IntBetween(45, 130)),
		WeightUnit:    profile.UnitKilograms,
		Gender:        test.Faker.RandomStringElement([]string{"male", "female", "non-binary"}),
		DiabetesType:  test.Faker.RandomStringElement([]string{"type1", "type2", "gestational"}),
		DiagnosisYear: strconv.Itoa(test.Faker.IntBetween(1990, 2025)),
	}
}

func RandomMedicalHistory() profile.MedicalHistory {
	return profile.MedicalHistory{
		MedicalConditions:  []string{test.Faker.RandomStringElement(conditions)},
		FamilyHeartDisease: "no",
		TakingInsulin:      "yes",
		InsulinType:        test.Faker.RandomStringElement([]string{"rapid-acting", "long-acting", "mixed"}),
		InsulinDosage:      strconv.Itoa(test.Faker.IntBetween(5, 40)) + " units",
		InsulinSchedule:    test.Faker.RandomStringElement([]string{"morning", "evening", "with meals"}),
		Allergies:          []string{},
	}
}

func RandomLifestyle() profile.Lifestyle {
	return profile.Lifestyle{
		SmokingStatus:      test.Faker.RandomStringElement([]string{"never", "former", "current"}),
		AlcoholConsumption: test.Faker.RandomStringElement([]string{"never", "occasionally", "moderate"}),
		ExerciseFrequency:  test.Faker.RandomStringElement([]string{"sedentary", "light", "moderate", "active"}),
	}
}

func RandomMonitoring() profile.Monitoring {
	return profile.Monitoring{
		BloodSugarMonitoring: test.Faker.RandomStringElement([]string{"never", "occasionally", "once_daily", "multiple_daily"}),
		Hba1cReading:         strconv.FormatFloat(float64(test.Faker.IntBetween(50, 120))/10, 'f', 1, 64),
		UsesCGM:              "no",
		FrequentHypoglycemia: "no",
	}
}

func RandomDraft() profile.Draft {
	return profile.Draft{
		PersonalInfo:   RandomPersonalInfo(),
		MedicalHistory: RandomMedicalHistory(),
		Lifestyle:      RandomLifestyle(),
		Monitoring:     RandomMonitoring(),
	}
}

func RandomUser() profile.User {
	return profile.User{
		ID:        test.Faker.UUID().V4(),
		FirstName: test.Faker.Person().FirstName(),
		LastName:  test.Faker.Person().LastName(),
		Email:     test.Faker.Internet().Email(),
	}
}

func RandomAggregate() profile.Aggregate {
	return profile.Aggregate{
		User:     RandomUser(),
		Sections: RandomDraft(),
	}
}
