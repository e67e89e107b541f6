package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/fsregister/fsregister"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search the register by name",
	Long: `Search the register for firms, individuals or funds matching a name.
Prints every matching record; use resolve to turn a name into a single
reference number.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve a name to its reference number",
	Long: `Resolve a firm, individual or fund name to its FRN, IRN or PRN.
A name matching exactly one record prints that record's reference
number; an ambiguous name prints the candidate records instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, resolveCmd} {
		c.Flags().StringVarP(&resourceTypeFlag, "type", "t", "firm", "resource type (firm, individual or fund)")
	}
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", `filter expression, e.g. 'field("Status") == "Authorised"'`)

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(resolveCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	resourceType, err := fsregister.ParseResourceType(resourceTypeFlag)
	if err != nil {
		return err
	}

	logger.Info().Str("name", args[0]).Str("type", resourceType.String()).Msg("Searching register")

	res, err := client.CommonSearch(context.Background(), args[0], resourceType)
	if err != nil {
		return err
	}

	return printResponse(res)
}

func runResolve(cmd *cobra.Command, args []string) error {
	resourceType, err := fsregister.ParseResourceType(resourceTypeFlag)
	if err != nil {
		return err
	}

	resolution, err := client.ResolveReferenceNumber(context.Background(), args[0], resourceType)
	if err != nil {
		return err
	}

	if resolution.Unique() {
		fmt.Println(resolution.ReferenceNumber)
		return nil
	}

	fmt.Printf("%q is ambiguous; %d candidates:\n", args[0], len(resolution.Candidates))
	return printRecords(resolution.Candidates)
}
