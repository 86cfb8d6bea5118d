package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/glucomate-org/glucomate/profile"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
)

var saveSets []string

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Update profile fields and save all sections",
	Long: "The save command loads the stored profile, applies the given field overrides " +
		"and saves all four sections. Sections without an existing record are created.",
	Example: `  glucomate profile save --set personalInfo.age=42 --set personalInfo.weight=70
  glucomate profile save --set medicalHistory.allergies=penicillin,sulfa`,
	RunE: func(cmd *cobra.Command, args []string) error { return Run(saveProfile) },
}

func saveProfile(editor *profile.Editor) error {
	ctx := context.TODO()
	if err := editor.Load(ctx); err != nil {
		return err
	}

	editor.BeginEdit()
	draft := editor.Draft()
	if err := applySets(&draft.Sections, saveSets); err != nil {
		return err
	}
	for _, kind := range profile.Kinds() {
		if err := profile.ValidateDraftSection(kind, &draft.Sections); err != nil {
			return err
		}
	}

	result, err := editor.SubmitAll(ctx)
	if err != nil {
		return err
	}

	switch result.State {
	case profile.StateConfirmed:
		for _, kind := range profile.Kinds() {
			fmt.Printf("%s: %s\n", sectionKeys[kind], result.Outcomes[kind])
		}
	case profile.StatePartiallyFailed:
		for _, kind := range profile.Kinds() {
			if outcome, ok := result.Outcomes[kind]; ok {
				fmt.Printf("%s: %s\n", sectionKeys[kind], outcome)
			}
		}
		for _, failure := range result.Failures {
			fmt.Printf("%s: %v\n", sectionKeys[failure.Kind], failure.Err)
		}
		return fmt.Errorf("%d section(s) failed to save", len(result.Failures))
	case profile.StateSessionExpired:
		return fmt.Errorf("session expired, log in again")
	}

	return nil
}

// applySets folds `section.field=value` overrides into the draft. List
// fields take comma separated values.
func applySets(draft *profile.Draft, sets []string) error {
	overrides := map[string]map[string]interface{}{}
	for _, set := range sets {
		path, value, found := strings.Cut(set, "=")
		if !found {
			return fmt.Errorf("expected section.field=value, got %q", set)
		}
		section, name, found := strings.Cut(path, ".")
		if !found {
			return fmt.Errorf("expected section.field=value, got %q", set)
		}

		kind, ok := kindForSection(section)
		if !ok {
			return fmt.Errorf("unknown section %q", section)
		}
		schema, _ := profile.SchemaFor(kind)
		field, ok := fieldForName(schema, name)
		if !ok {
			return fmt.Errorf("unknown field %q in section %q", name, section)
		}

		key := sectionKeys[kind]
		if overrides[key] == nil {
			overrides[key] = map[string]interface{}{}
		}
		if field.Type == profile.FieldList {
			overrides[key][field.Name] = profile.SplitList(value)
		} else {
			overrides[key][field.Name] = value
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "structs",
		Result:  draft,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(overrides)
}

func init() {
	profileSaveCmd.Flags().StringArrayVar(&saveSets, "set", nil, "Field override as section.field=value (repeatable)")
	profileCmd.AddCommand(profileSaveCmd)
}
