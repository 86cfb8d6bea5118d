package command

import (
	"fmt"
	"strings"

	"github.com/glucomate-org/glucomate/profile"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and update the medical profile",
}

// sectionKeys maps a section kind to its key in the aggregate shape. The
// same keys are accepted on the command line.
var sectionKeys = map[profile.Kind]string{
	profile.KindPersonalInfo:   "personalInfo",
	profile.KindMedicalHistory: "medicalHistory",
	profile.KindLifestyle:      "lifestyle",
	profile.KindMonitoring:     "monitoring",
}

func kindForSection(section string) (profile.Kind, bool) {
	for kind, key := range sectionKeys {
		if strings.EqualFold(section, key) || strings.EqualFold(section, string(kind)) {
			return kind, true
		}
	}
	return "", false
}

func fieldForName(schema profile.Schema, name string) (profile.Field, bool) {
	for _, field := range schema.Fields {
		if strings.EqualFold(field.Name, name) {
			return field, true
		}
	}
	return profile.Field{}, false
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return profile.JoinList(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
