package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/hammer/address"
	"github.com/dhamidi/hammer/parse"
)

var log = commonlog.GetLogger("hammer.batch")

func newBatchCmd() *cobra.Command {
	var (
		citiesFile string
		asJSON     bool
		verbosity  int
	)

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Parse a file of addresses, repairing dirty ones with cities from clean ones",
		Long: `Batch reads one address per line from a file (or stdin) and parses all of
them in two passes: cities recognized in clean addresses are used to reparse
the addresses that failed on their own. Addresses that still fail are logged
and dropped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)

			in := os.Stdin
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}
			var addrs []string
			scanner := bufio.NewScanner(in)
			for scanner.Scan() {
				if line := strings.TrimSpace(scanner.Text()); line != "" {
					addrs = append(addrs, line)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			cities, err := readCities(citiesFile)
			if err != nil {
				return err
			}
			p, err := parse.NewParser(cities)
			if err != nil {
				return err
			}

			var failed []string
			parsed, err := parse.SmartBatch(p, addrs, func(err error, orig string) {
				failed = append(failed, orig)
				log.Errorf("cannot parse %q: %s", orig, err)
			})
			if err != nil {
				return err
			}

			suggestCities(parsed, failed)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				for _, a := range parsed {
					if err := enc.Encode(a); err != nil {
						return fmt.Errorf("encode: %w", err)
					}
				}
			} else {
				for _, a := range parsed {
					fmt.Println(a.String())
				}
			}

			log.Infof("parsed %s of %s addresses",
				humanize.Comma(int64(len(parsed))), humanize.Comma(int64(len(addrs))))
			return nil
		},
	}

	cmd.Flags().StringVar(&citiesFile, "cities-file", "", "file with one known city name per line")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print parsed addresses as JSON lines")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	return cmd
}

func readCities(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cities: %w", err)
	}
	var cities []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			cities = append(cities, line)
		}
	}
	return cities, nil
}

// suggestCities points out failed inputs whose trailing token is close to a
// city seen elsewhere in the batch. The parser never corrects typos, so the
// best we can do is tell the operator where to look.
func suggestCities(parsed []address.RawAddress, failed []string) {
	var cities []string
	seen := make(map[string]bool)
	for _, a := range parsed {
		if !seen[a.City] {
			seen[a.City] = true
			cities = append(cities, a.City)
		}
	}

	for _, orig := range failed {
		tokens := strings.Fields(strings.ToUpper(orig))
		if len(tokens) == 0 {
			continue
		}
		for _, tok := range tokens[max(0, len(tokens)-3):] {
			if city, score, ok := address.Closest(tok, cities); ok && score >= 0.8 && score < 1 {
				log.Warningf("%q: token %q resembles city %q", orig, tok, city)
				break
			}
		}
	}
}
