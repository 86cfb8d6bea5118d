package profile_test

import (
	"github.com/glucomate-org/glucomate/profile"
	profileTest "github.com/glucomate-org/glucomate/profile/test"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Validate", func() {
	var draft profile.Draft

	BeforeEach(func() {
		draft = profileTest.RandomDraft()
	})

	Describe("MissingCreateFields", func() {
		It("returns nothing for a complete draft", func() {
			Expect(profile.MissingCreateFields(profile.KindPersonalInfo, &draft)).To(BeEmpty())
			Expect(profile.MissingCreateFields(profile.KindMedicalHistory, &draft)).To(BeEmpty())
			Expect(profile.MissingCreateFields(profile.KindLifestyle, &draft)).To(BeEmpty())
			Expect(profile.MissingCreateFields(profile.KindMonitoring, &draft)).To(BeEmpty())
		})

		It("names every missing required field", func() {
			draft.PersonalInfo.Age = ""
			draft.PersonalInfo.Gender = ""

			Expect(profile.MissingCreateFields(profile.KindPersonalInfo, &draft)).To(ConsistOf("age", "gender"))
		})

		It("rejects non-positive numbers for required number fields", func() {
			draft.PersonalInfo.Height = "0"

			Expect(profile.MissingCreateFields(profile.KindPersonalInfo, &draft)).To(ConsistOf("height"))
		})

		It("requires the family member when heart disease runs in the family", func() {
			draft.MedicalHistory.FamilyHeartDisease = "yes"
			draft.MedicalHistory.FamilyMember = ""

			Expect(profile.MissingCreateFields(profile.KindMedicalHistory, &draft)).To(ConsistOf("familyMember"))
		})

		It("requires the other condition when Other is selected", func() {
			draft.MedicalHistory.MedicalConditions = []string{"Hypertension", "Other"}
			draft.MedicalHistory.OtherCondition = ""

			Expect(profile.MissingCreateFields(profile.KindMedicalHistory, &draft)).To(ConsistOf("otherCondition"))
		})

		It("does not require companions when their gate is no", func() {
			draft.Monitoring.UsesCGM = "no"
			draft.Monitoring.CGMFrequency = ""
			draft.Monitoring.FrequentHypoglycemia = "no"
			draft.Monitoring.HypoglycemiaFrequency = ""

			Expect(profile.MissingCreateFields(profile.KindMonitoring, &draft)).To(BeEmpty())
		})

		It("requires the hypoglycemia frequency when episodes are frequent", func() {
			draft.Monitoring.FrequentHypoglycemia = "yes"
			draft.Monitoring.HypoglycemiaFrequency = ""

			Expect(profile.MissingCreateFields(profile.KindMonitoring, &draft)).To(ConsistOf("hypoglycemiaFrequency"))
		})
	})

	Describe("ValidateDraftSection", func() {
		It("accepts a complete draft", func() {
			for _, kind := range profile.Kinds() {
				Expect(profile.ValidateDraftSection(kind, &draft)).To(Succeed())
			}
		})

		It("rejects non-numeric input in number fields", func() {
			draft.PersonalInfo.Age = "old"

			err := profile.ValidateDraftSection(profile.KindPersonalInfo, &draft)
			Expect(err).To(MatchError(ContainSubstring("age must be a number")))
		})

		It("rejects values outside the option set", func() {
			draft.Lifestyle.SmokingStatus = "sometimes"

			err := profile.ValidateDraftSection(profile.KindLifestyle, &draft)
			Expect(err).To(MatchError(ContainSubstring("smokingStatus")))
		})

		It("accepts empty optional fields", func() {
			draft.Monitoring.Hba1cReading = ""

			Expect(profile.ValidateDraftSection(profile.KindMonitoring, &draft)).To(Succeed())
		})
	})
})
