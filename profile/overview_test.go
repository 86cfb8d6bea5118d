package profile_test

import (
	"time"

	"github.com/glucomate-org/glucomate/profile"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Overview", func() {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	Describe("AgeFromBirthDate", func() {
		It("computes whole years", func() {
			Expect(profile.AgeFromBirthDate("1984-01-01", now)).To(Equal("42"))
		})

		It("subtracts a year before the birthday", func() {
			Expect(profile.AgeFromBirthDate("1984-12-31", now)).To(Equal("41"))
		})

		It("accepts RFC3339 timestamps", func() {
			Expect(profile.AgeFromBirthDate("1984-01-01T00:00:00Z", now)).To(Equal("42"))
		})

		It("yields empty for unparseable input", func() {
			Expect(profile.AgeFromBirthDate("yesterday", now)).To(BeEmpty())
		})
	})

	Describe("NormalizeOverview", func() {
		It("tolerates both key casings", func() {
			data := map[string]interface{}{
				"user": map[string]interface{}{
					"id":         "user-1",
					"first_name": "Ada",
					"lastName":   "Lovelace",
					"email":      "ada@example.com",
				},
				"personal_info": map[string]interface{}{
					"dateOfBirth":   "1984-01-01",
					"heightCm":      170.0,
					"weight":        70.5,
					"gender":        "female",
					"diabetes_type": "type1",
				},
				"monitoring": map[string]interface{}{
					"glucose_frequency":  "once_daily",
					"latestHba1cPercent": 7.2,
					"usesCGM":            true,
					"cgmFrequency":       "daily",
				},
			}

			aggregate := profile.NormalizeOverview(data, now)

			Expect(aggregate.User.ID).To(Equal("user-1"))
			Expect(aggregate.User.FirstName).To(Equal("Ada"))
			Expect(aggregate.User.LastName).To(Equal("Lovelace"))

			personal := aggregate.Sections.PersonalInfo
			Expect(personal.Age).To(Equal("42"))
			Expect(personal.Height).To(Equal("170"))
			Expect(personal.Weight).To(Equal("70.5"))
			Expect(personal.DiabetesType).To(Equal("type1"))
			Expect(personal.HeightUnit).To(Equal(profile.UnitCentimeters))

			monitoring := aggregate.Sections.Monitoring
			Expect(monitoring.BloodSugarMonitoring).To(Equal("once_daily"))
			Expect(monitoring.Hba1cReading).To(Equal("7.2"))
			Expect(monitoring.UsesCGM).To(Equal("yes"))
			Expect(monitoring.CGMFrequency).To(Equal("daily"))
		})

		It("maps server booleans onto yes/no answers", func() {
			data := map[string]interface{}{
				"medicalHistory": map[string]interface{}{
					"takingInsulin":      true,
					"familyHeartDisease": false,
					"allergies":          []interface{}{"penicillin"},
				},
			}

			history := profile.NormalizeOverview(data, now).Sections.MedicalHistory
			Expect(history.TakingInsulin).To(Equal("yes"))
			Expect(history.FamilyHeartDisease).To(Equal("no"))
			Expect(history.Allergies).To(Equal([]string{"penicillin"}))
		})

		It("yields empty shapes for missing sections", func() {
			aggregate := profile.NormalizeOverview(map[string]interface{}{}, now)

			Expect(aggregate.Sections.PersonalInfo.Age).To(BeEmpty())
			Expect(aggregate.Sections.MedicalHistory.MedicalConditions).To(BeEmpty())
			Expect(aggregate.Sections.Lifestyle.SmokingStatus).To(BeEmpty())
		})
	})
})
