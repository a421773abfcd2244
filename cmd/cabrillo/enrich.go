package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich <callsign>...",
	Short: "Look up the DXCC entity of callsigns",
	Long: `Look up the country, continent, zones and location of callsigns.

Example:
  cabrillo enrich SP5TLS W1AW
  cabrillo enrich --cty cty.csv 4U1UN`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, _, table := setup(cmd)
		output, _ := cmd.Flags().GetString("output")

		unknown := 0
		for _, call := range args {
			entity, ok := table.Lookup(call)
			if !ok {
				unknown++
				fmt.Printf("%s: unknown\n", call)
				continue
			}

			if output == "json" {
				if err := printJSON(entity); err != nil {
					fail("%v", err)
				}
				continue
			}
			fmt.Printf("%s: %s (%s) %s CQ %d ITU %d DXCC %d\n",
				call, entity.Country, entity.MainPrefix, entity.Continent,
				entity.CQZone, entity.ITUZone, entity.DXCC)
		}

		if unknown > 0 {
			fail("%d callsign(s) could not be resolved", unknown)
		}
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
	enrichCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}
