package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/fsregister/fsregister"
)

var profileFlag bool

// firmSubResources maps the firm subcommand argument to the accessor
// that serves it.
var firmSubResources = map[string]func(*fsregister.Client, context.Context, string) (*fsregister.Response, error){
	"names":                (*fsregister.Client).GetFirmNames,
	"address":              (*fsregister.Client).GetFirmAddresses,
	"controlled-functions": (*fsregister.Client).GetFirmControlledFunctions,
	"individuals":          (*fsregister.Client).GetFirmIndividuals,
	"permissions":          (*fsregister.Client).GetFirmPermissions,
	"requirements":         (*fsregister.Client).GetFirmRequirements,
	"regulators":           (*fsregister.Client).GetFirmRegulators,
	"passports":            (*fsregister.Client).GetFirmPassports,
	"waivers":              (*fsregister.Client).GetFirmWaivers,
	"exclusions":           (*fsregister.Client).GetFirmExclusions,
	"disciplinary":         (*fsregister.Client).GetFirmDisciplinaryHistory,
	"ar":                   (*fsregister.Client).GetFirmAppointedRepresentatives,
}

// firmCmd represents the firm command
var firmCmd = &cobra.Command{
	Use:   "firm <frn> [sub-resource]",
	Short: "Fetch a firm record or one of its sub-resources",
	Long: `Fetch a firm by its firm reference number (FRN), or one of its
sub-resources: names, address, controlled-functions, individuals,
permissions, requirements, regulators, passports, waivers, exclusions,
disciplinary, ar.

With --profile the firm record and its main sub-resources are fetched
in one go.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFirm,
}

func init() {
	firmCmd.Flags().BoolVar(&profileFlag, "profile", false, "fetch the firm record plus its main sub-resources")
	firmCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the returned records")

	rootCmd.AddCommand(firmCmd)
}

func runFirm(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	frn := args[0]

	if profileFlag {
		if len(args) > 1 {
			return fmt.Errorf("--profile cannot be combined with a sub-resource")
		}

		ops := fsregister.NewOperations(client, logger)
		profile, err := ops.FirmProfile(ctx, frn)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	}

	if len(args) == 1 {
		res, err := client.GetFirm(ctx, frn)
		if err != nil {
			return err
		}
		return printResponse(res)
	}

	fetch, ok := firmSubResources[args[1]]
	if !ok {
		return fmt.Errorf("unknown firm sub-resource: %s", args[1])
	}

	res, err := fetch(client, ctx, frn)
	if err != nil {
		return err
	}
	return printResponse(res)
}
