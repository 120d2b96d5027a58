package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/billtrack/internal/cli"
	"github.com/theirongolddev/billtrack/internal/model"
	"github.com/theirongolddev/billtrack/internal/profile"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:     "profiles",
	Aliases: []string{"profile"},
	Short:   "List profiles",
	RunE:    runProfilesList,
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE:  runProfilesList,
}

var profilesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a profile",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProfilesAdd,
}

var profilesRenameCmd = &cobra.Command{
	Use:   "rename <id-or-name> <new name>",
	Short: "Rename a profile",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runProfilesRename,
}

var profilesUseCmd = &cobra.Command{
	Use:   "use <id-or-name>",
	Short: "Make a profile active",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesUse,
}

func init() {
	profilesCmd.AddCommand(profilesListCmd, profilesAddCmd, profilesRenameCmd, profilesUseCmd)
	rootCmd.AddCommand(profilesCmd)
}

func runProfilesList(_ *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	all := e.profiles.Profiles()
	activeID := e.profiles.ActiveProfileID()
	multi := e.state.MultiProfileMode()
	now := time.Now()

	rows := make([][]string, 0, len(all))
	for _, p := range all {
		mark := ""
		if p.ID == activeID {
			mark = "active"
		}
		if multi && e.state.IsProfileSelected(p.ID) {
			if mark != "" {
				mark += ", "
			}
			mark += "selected"
		}
		rows = append(rows, []string{p.DisplayName(), p.ID, cli.FormatAge(p.CreatedAt, now), mark})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   cli.FormatCount(len(all), "profile", "profiles"),
		Headers: []string{"Name", "ID", "Created", ""},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runProfilesAdd(_ *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.profiles.CreateProfile(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(cli.RenderStatus(true, fmt.Sprintf("Created %s (%s)", p.DisplayName(), p.ID)))
	return nil
}

func runProfilesRename(_ *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := findProfile(e.profiles, args[0])
	if err != nil {
		return err
	}
	name := strings.Join(args[1:], " ")
	if err := e.profiles.RenameProfile(p.ID, name); err != nil {
		return err
	}
	fmt.Println(cli.RenderStatus(true, fmt.Sprintf("Renamed %s to %s", p.DisplayName(), strings.TrimSpace(name))))
	return nil
}

func runProfilesUse(_ *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := findProfile(e.profiles, args[0])
	if err != nil {
		return err
	}
	if err := e.profiles.SetActiveProfile(p.ID); err != nil {
		return err
	}
	fmt.Println(cli.RenderStatus(true, "Active profile: "+p.DisplayName()))
	return nil
}

var errAmbiguousProfile = errors.New("more than one profile matches")

// profileFinder is the part of profile.Service findProfile reads.
type profileFinder interface {
	Lookup(id string) (model.Profile, bool)
	Profiles() []model.Profile
}

var _ profileFinder = (*profile.Service)(nil)

// findProfile matches ref against profile ids first, then names
// case-insensitively.
func findProfile(reg profileFinder, ref string) (model.Profile, error) {
	if p, ok := reg.Lookup(ref); ok {
		return p, nil
	}

	all := reg.Profiles()

	var found []model.Profile
	for _, p := range all {
		if strings.EqualFold(p.Name, ref) {
			found = append(found, p)
		}
	}
	switch len(found) {
	case 0:
		if guess, ok := closestProfile(all, ref); ok {
			return model.Profile{}, fmt.Errorf("%q: %w (did you mean %q?)", ref, profile.ErrNotFound, guess.Name)
		}
		return model.Profile{}, fmt.Errorf("%q: %w", ref, profile.ErrNotFound)
	case 1:
		return found[0], nil
	}
	return model.Profile{}, fmt.Errorf("%q: %w", ref, errAmbiguousProfile)
}

// maxSuggestDistance bounds how far a typo may be from a profile name.
const maxSuggestDistance = 3

func closestProfile(all []model.Profile, ref string) (model.Profile, bool) {
	best, bestDist := model.Profile{}, maxSuggestDistance+1
	for _, p := range all {
		d := levenshtein.ComputeDistance(strings.ToLower(p.Name), strings.ToLower(ref))
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, bestDist <= maxSuggestDistance
}
