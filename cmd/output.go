package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/s0up4200/fsregister/filter"
	"github.com/s0up4200/fsregister/fsregister"
)

// printResponse decodes the response envelope, applies the --filter
// expression if one was given, and prints the records as indented JSON.
func printResponse(res *fsregister.Response) error {
	data, err := res.Data()
	if err != nil {
		return err
	}

	status, _ := res.Status()
	message, _ := res.Message()
	logger.Debug().
		Str("status", status).
		Str("message", message).
		Int("records", len(data)).
		Msg("FS Register API response")

	if filterExpr != "" {
		f, err := filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		data = f.Apply(data)
	}

	return printRecords(data)
}

// printRecords prints records as indented JSON, or a notice when there
// are none.
func printRecords(records []fsregister.Record) error {
	if len(records) == 0 {
		fmt.Println("No records found.")
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
