package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hirewatch/hirewatch/pkg/hiring"
)

// rolesCmd represents the roles command
var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Manage open roles",
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles in the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		activeOnly, _ := cmd.Flags().GetBool("active-only")
		roles := a.store.Roles()
		if activeOnly {
			roles = a.store.ActiveRoles()
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(roles)
		}
		if len(roles) == 0 {
			fmt.Println("No roles loaded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tDEPARTMENT\tLOCATION\tACTIVE\tREQUIRED SKILLS\t")
		for _, r := range roles {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
				r.ID, r.Title, r.Department, r.Location, yesNo(r.IsActive), joined(r.RequiredSkills))
		}
		w.Flush()

		return nil
	},
}

var rolesGetCmd = &cobra.Command{
	Use:   "get <role-id>",
	Short: "Show one role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		r, ok := a.store.Role(args[0])
		if !ok {
			return fmt.Errorf("role %s not found in the session", args[0])
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(r)
		}

		fmt.Printf("%s (%s)\n", r.Title, r.Department)
		if r.Description != "" {
			fmt.Println(r.Description)
		}
		fmt.Printf("Active:           %s\n", yesNo(r.IsActive))
		fmt.Printf("Required skills:  %s\n", joined(r.RequiredSkills))
		fmt.Printf("Preferred skills: %s\n", joined(r.PreferredSkills))
		fmt.Printf("Experience:       %s\n", r.ExperienceRequired)
		fmt.Printf("Education:        %s\n", r.EducationRequired)
		fmt.Printf("Location:         %s (remote: %s)\n", r.Location, r.RemoteOption)
		if r.SalaryRange != nil {
			fmt.Printf("Salary band:      %.0f - %.0f\n", r.SalaryRange.Min, r.SalaryRange.Max)
		}
		if r.TeamSize > 0 {
			fmt.Printf("Team size:        %d\n", r.TeamSize)
		}
		if r.HiringManager != "" {
			fmt.Printf("Hiring manager:   %s\n", r.HiringManager)
		}
		fmt.Printf("Created:          %s\n", fmtDate(r.CreatedAt))

		return nil
	},
}

var rolesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a role from flags or a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		var in hiring.RoleInput
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			if err := readInputFile(file, &in); err != nil {
				return err
			}
		} else {
			flags := cmd.Flags()
			in.Title, _ = flags.GetString("title")
			in.Department, _ = flags.GetString("department")
			in.Description, _ = flags.GetString("description")
			in.RequiredSkills, _ = flags.GetStringSlice("skills")
			in.PreferredSkills, _ = flags.GetStringSlice("preferred-skills")
			in.ExperienceRequired, _ = flags.GetString("experience")
			in.EducationRequired, _ = flags.GetString("education")
			in.CertificationsRequired, _ = flags.GetStringSlice("certifications")
			in.Location, _ = flags.GetString("location")
			in.RemoteOption, _ = flags.GetString("remote")
			in.TeamSize, _ = flags.GetInt("team-size")
			in.HiringManager, _ = flags.GetString("hiring-manager")
			if band, err := salaryBand(flags); err != nil {
				return err
			} else if band != nil {
				in.SalaryRange = band
			}
		}

		r, err := a.hub.Roles().Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Printf("Created role %s: %s\n", r.ID, r.Title)
		return nil
	},
}

var rolesUpdateCmd = &cobra.Command{
	Use:   "update <role-id>",
	Short: "Update a role; only the flags you pass are changed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		var patch hiring.RolePatch
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			if err := readInputFile(file, &patch); err != nil {
				return err
			}
		} else {
			flags := cmd.Flags()
			patch.Title = stringPatch(flags, "title")
			patch.Department = stringPatch(flags, "department")
			patch.Description = stringPatch(flags, "description")
			patch.ExperienceRequired = stringPatch(flags, "experience")
			patch.EducationRequired = stringPatch(flags, "education")
			patch.Location = stringPatch(flags, "location")
			patch.RemoteOption = stringPatch(flags, "remote")
			patch.HiringManager = stringPatch(flags, "hiring-manager")
			if flags.Changed("skills") {
				patch.RequiredSkills, _ = flags.GetStringSlice("skills")
			}
			if flags.Changed("preferred-skills") {
				patch.PreferredSkills, _ = flags.GetStringSlice("preferred-skills")
			}
			if flags.Changed("certifications") {
				patch.CertificationsRequired, _ = flags.GetStringSlice("certifications")
			}
			if flags.Changed("team-size") {
				v, _ := flags.GetInt("team-size")
				patch.TeamSize = &v
			}
			if flags.Changed("active") {
				v, _ := flags.GetBool("active")
				patch.IsActive = &v
			}
			if band, err := salaryBand(flags); err != nil {
				return err
			} else if band != nil {
				patch.SalaryRange = band
			}
		}

		r, err := a.hub.Roles().Update(cmd.Context(), args[0], patch)
		if err != nil {
			return err
		}
		fmt.Printf("Updated role %s: %s\n", r.ID, r.Title)
		return nil
	},
}

var rolesDeleteCmd = &cobra.Command{
	Use:   "delete <role-id>",
	Short: "Deactivate a role (soft delete)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := a.hub.Roles().Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Role %s deactivated\n", args[0])
		return nil
	},
}

// readInputFile loads the JSON at path into v. It is how create/update
// accept full payloads that would be unwieldy as flags.
func readInputFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// salaryBand builds a salary range from the --salary-min/--salary-max pair.
// Passing only one of the two is an error; passing neither means "leave it".
func salaryBand(flags *pflag.FlagSet) (*hiring.SalaryRange, error) {
	minSet, maxSet := flags.Changed("salary-min"), flags.Changed("salary-max")
	if !minSet && !maxSet {
		return nil, nil
	}
	if minSet != maxSet {
		return nil, fmt.Errorf("--salary-min and --salary-max must be given together")
	}
	lo, _ := flags.GetFloat64("salary-min")
	hi, _ := flags.GetFloat64("salary-max")
	return &hiring.SalaryRange{Min: lo, Max: hi}, nil
}

func stringPatch(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func addRoleFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Role title")
	cmd.Flags().String("department", "", "Department name")
	cmd.Flags().String("description", "", "Role description")
	cmd.Flags().StringSlice("skills", nil, "Required skills (comma separated)")
	cmd.Flags().StringSlice("preferred-skills", nil, "Preferred skills (comma separated)")
	cmd.Flags().String("experience", "", "Experience requirement, e.g. \"5+ years\"")
	cmd.Flags().String("education", "", "Education requirement")
	cmd.Flags().StringSlice("certifications", nil, "Required certifications (comma separated)")
	cmd.Flags().String("location", "", "Role location")
	cmd.Flags().String("remote", "", "Remote option, e.g. hybrid")
	cmd.Flags().Int("team-size", 0, "Team size")
	cmd.Flags().String("hiring-manager", "", "Hiring manager name")
	cmd.Flags().Float64("salary-min", 0, "Salary band minimum")
	cmd.Flags().Float64("salary-max", 0, "Salary band maximum")
	cmd.Flags().String("file", "", "Read the full payload from a JSON file instead of flags")
}

func init() {
	rolesCmd.AddCommand(rolesListCmd)
	rolesCmd.AddCommand(rolesGetCmd)
	rolesCmd.AddCommand(rolesCreateCmd)
	rolesCmd.AddCommand(rolesUpdateCmd)
	rolesCmd.AddCommand(rolesDeleteCmd)
	rootCmd.AddCommand(rolesCmd)

	rolesListCmd.Flags().Bool("active-only", false, "Hide deactivated roles")
	rolesListCmd.Flags().Bool("json", false, "Print roles as JSON")
	rolesGetCmd.Flags().Bool("json", false, "Print the role as JSON")

	addRoleFieldFlags(rolesCreateCmd)
	addRoleFieldFlags(rolesUpdateCmd)
	rolesUpdateCmd.Flags().Bool("active", true, "Set the active flag")
}
