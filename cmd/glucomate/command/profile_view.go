package command

import (
	"context"
	"fmt"

	"github.com/fatih/structs"
	"github.com/glucomate-org/glucomate/profile"
	"github.com/spf13/cobra"
)

var profileViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the stored medical profile",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(viewProfile) },
}

func viewProfile(editor *profile.Editor) error {
	if err := editor.Load(context.TODO()); err != nil {
		return err
	}

	renderAggregate(editor.Confirmed())
	return nil
}

func renderAggregate(aggregate *profile.Aggregate) {
	if aggregate == nil {
		fmt.Println("No profile on record")
		return
	}

	user := aggregate.User
	fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)

	sections := structs.Map(aggregate.Sections)
	for _, kind := range profile.Kinds() {
		schema, ok := profile.SchemaFor(kind)
		if !ok {
			continue
		}
		values, _ := sections[sectionKeys[kind]].(map[string]interface{})

		fmt.Printf("\n[%s]\n", sectionKeys[kind])
		for _, field := range schema.Fields {
			fmt.Printf("  %-24s %s\n", field.Label, formatValue(values[field.Name]))
		}
	}
}

func init() {
	profileCmd.AddCommand(profileViewCmd)
}
