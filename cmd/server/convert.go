package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/warp/dimensional/algebra"
	"github.com/warp/dimensional/api"
)

var (
	convertDifference bool
	convertRecord     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert a value between units",
	Long: `Convert a value between two unit expressions, e.g.

  dimensional convert 1 dyne newton
  dimensional convert 10 celsius fahrenheit --difference`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[0], err)
		}

		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		from, err := api.ParseUnit(e.registry, args[1])
		if err != nil {
			return err
		}
		to, err := api.ParseUnit(e.registry, args[2])
		if err != nil {
			return err
		}

		f, err := e.registry.Resolve(from, to)
		if err != nil {
			return err
		}
		output := f.Apply(value)
		if convertDifference {
			output = value * f.Scale()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%g %s = %g %s\n", value, args[1], output, args[2])

		if convertRecord {
			err := e.store.AppendConversion(cmd.Context(), algebra.ConversionRecord{
				At:     time.Now(),
				From:   args[1],
				To:     args[2],
				Input:  value,
				Output: output,
				Scale:  f.ExactScale().String(),
				Offset: f.ExactOffset().String(),
			})
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().BoolVar(&convertDifference, "difference", false, "Convert an interval (scale only, no offset)")
	convertCmd.Flags().BoolVar(&convertRecord, "record", false, "Append the conversion to the history")
}
