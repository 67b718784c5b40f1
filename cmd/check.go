package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"bcds-membership/core/utils"
	"bcds-membership/feature/memberships"

	"github.com/spf13/cobra"
)

var (
	// Flags for check member
	memberFirstName string
	memberLastName  string
	memberNumber    string
	memberDate      string
)

// checkCmd is the parent command for membership checks.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check membership of players and tournaments",
}

// checkMemberCmd checks the membership of one player.
var checkMemberCmd = &cobra.Command{
	Use:   "member",
	Short: "Check the membership of a player",
	Long: `Looks a player up by PDGA number and/or name and prints the membership
state on a date together with the membership history.

Examples:
  check member --number 89924 --last moens
  check member --first ted --last moens --date 2024-06-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := memberships.Query{FirstName: memberFirstName, LastName: memberLastName, RegistryNumber: memberNumber}
		if q.RegistryNumber == "" && utils.NormalizeName(q.FirstName+" "+q.LastName) == "" {
			return errors.New("a name or a pdga number is required")
		}
		q.Date = utils.DateOf(time.Now())
		if memberDate != "" {
			date, err := utils.ParseDate(memberDate)
			if err != nil {
				return err
			}
			q.Date = date
		}

		d, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		state, err := d.memberships.CheckMembership(ctx, q)
		if err != nil {
			return err
		}
		player, intervals, err := d.memberships.History(ctx, q)
		if err != nil {
			return err
		}

		rows := [][]string{{"State on " + utils.FormatDate(q.Date), state.String()}}
		if player != nil {
			rows = append(rows,
				[]string{"Player", fmt.Sprintf("%s (id %d)", player.FullName, player.ID)},
				[]string{"PDGA number", player.RegistryNumber})
		}
		for _, i := range intervals {
			rows = append(rows, []string{"Membership", utils.FormatDate(i.ValidFrom) + " .. " + utils.FormatDate(i.ValidUntil)})
		}
		renderTable(os.Stdout, "", []string{"Field", "Value"}, rows)
		return nil
	},
}

// checkTournamentCmd reports the membership of every player of a tournament.
var checkTournamentCmd = &cobra.Command{
	Use:   "tournament <id>",
	Short: "Report the membership of the players of a PDGA tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer d.Close()

		if d.tournaments == nil {
			return errors.New("tournament reports need PDGA credentials, check the pdga configuration")
		}

		report, err := d.tournaments.Report(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(report.Rows))
		for _, r := range report.Rows {
			rows = append(rows, []string{r.Name, r.RegistryNumber, r.State.String(), r.Note})
		}
		title := fmt.Sprintf("%s (%s)", report.Tournament.Name, report.Date)
		renderTable(os.Stdout, title, []string{"Name", "PDGA #", "State", "Note"}, rows)
		renderTable(os.Stdout, "", []string{"State", "Players"}, counterRows(report.Totals))
		return nil
	},
}

func init() {
	checkMemberCmd.Flags().StringVar(&memberFirstName, "first", "", "First name")
	checkMemberCmd.Flags().StringVar(&memberLastName, "last", "", "Last name")
	checkMemberCmd.Flags().StringVar(&memberNumber, "number", "", "PDGA number")
	checkMemberCmd.Flags().StringVar(&memberDate, "date", "", "Date to check (YYYY-MM-DD), defaults to today")

	checkCmd.AddCommand(checkMemberCmd, checkTournamentCmd)
	RootCmd.AddCommand(checkCmd)
}
