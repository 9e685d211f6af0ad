package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/hammer/address"
	"github.com/dhamidi/hammer/parse"
)

func newParseCmd() *cobra.Command {
	var (
		cities    []string
		unchecked bool
		asJSON    bool
		row       bool
	)

	cmd := &cobra.Command{
		Use:   "parse <address>...",
		Short: "Parse one free-form address string into labeled fields",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parse.NewParser(cities)
			if err != nil {
				return err
			}

			var a address.RawAddress
			if row {
				a, err = p.ParseRow(args)
			} else {
				var opts []parse.Option
				if unchecked {
					opts = append(opts, parse.Unchecked())
				}
				a, err = p.Parse(strings.Join(args, " "), opts...)
			}
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(a)
			}
			fmt.Println(a.String())
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&cities, "city", nil, "city name the parser should recognize (repeatable)")
	cmd.Flags().BoolVar(&unchecked, "unchecked", false, "do not require house number, street name, city and state")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parsed address as JSON")
	cmd.Flags().BoolVar(&row, "row", false, "treat the arguments as pre-separated row cells")
	return cmd
}
