package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/fsregister/fsregister"
)

// individualCmd represents the individual command
var individualCmd = &cobra.Command{
	Use:   "individual <irn> [sub-resource]",
	Short: "Fetch an individual record or one of its sub-resources",
	Long: `Fetch an approved individual by their individual reference number
(IRN), or one of the sub-resources: controlled-functions, disciplinary.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runIndividual,
}

func init() {
	individualCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the returned records")
	rootCmd.AddCommand(individualCmd)
}

func runIndividual(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	irn := args[0]

	var (
		res *fsregister.Response
		err error
	)
	switch {
	case len(args) == 1:
		res, err = client.GetIndividual(ctx, irn)
	case args[1] == "controlled-functions":
		res, err = client.GetIndividualControlledFunctions(ctx, irn)
	case args[1] == "disciplinary":
		res, err = client.GetIndividualDisciplinaryHistory(ctx, irn)
	default:
		return fmt.Errorf("unknown individual sub-resource: %s", args[1])
	}
	if err != nil {
		return err
	}

	return printResponse(res)
}
