package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/fsregister/fsregister"
)

// fundCmd represents the fund command
var fundCmd = &cobra.Command{
	Use:   "fund <prn> [sub-resource]",
	Short: "Fetch a fund record or one of its sub-resources",
	Long: `Fetch a collective investment scheme by its product reference number
(PRN), or one of the sub-resources: names, subfunds.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFund,
}

// marketsCmd represents the markets command
var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "List the regulated markets recognised by the register",
	Args:  cobra.NoArgs,
	RunE:  runMarkets,
}

func init() {
	fundCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the returned records")

	rootCmd.AddCommand(fundCmd)
	rootCmd.AddCommand(marketsCmd)
}

func runFund(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	prn := args[0]

	var (
		res *fsregister.Response
		err error
	)
	switch {
	case len(args) == 1:
		res, err = client.GetFund(ctx, prn)
	case args[1] == "names":
		res, err = client.GetFundNames(ctx, prn)
	case args[1] == "subfunds":
		res, err = client.GetFundSubfunds(ctx, prn)
	default:
		return fmt.Errorf("unknown fund sub-resource: %s", args[1])
	}
	if err != nil {
		return err
	}

	return printResponse(res)
}

func runMarkets(cmd *cobra.Command, args []string) error {
	res, err := client.GetRegulatedMarkets(context.Background())
	if err != nil {
		return err
	}
	return printResponse(res)
}
