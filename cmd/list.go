package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoscience-tools/geochemtools/internal/geochem"
)

var listColumnsCmd = &cobra.Command{
	Use:   "list-columns <file>",
	Short: "Display the column headers in the dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := geochem.NewLoader(args[0], cfg.Schema(), logger)
		if err != nil {
			return err
		}
		cols, err := loader.Columns()
		if err != nil {
			return err
		}
		for _, c := range cols {
			fmt.Println(c)
		}
		return nil
	},
}

var listSampleTypesCmd = &cobra.Command{
	Use:   "list-sample-types <file>",
	Short: "Display the sample types present in the dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := geochem.NewLoader(args[0], cfg.Schema(), logger)
		if err != nil {
			return err
		}
		types, err := loader.SampleTypes()
		if err != nil {
			return err
		}
		for _, t := range types {
			fmt.Println(t)
		}
		return nil
	},
}

var listElementsCmd = &cobra.Command{
	Use:   "list-elements <file>",
	Short: "Display the analyte codes present in the dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := geochem.NewLoader(args[0], cfg.Schema(), logger)
		if err != nil {
			return err
		}
		elements, err := loader.Elements()
		if err != nil {
			return err
		}
		for _, e := range elements {
			fmt.Println(e)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listColumnsCmd)
	rootCmd.AddCommand(listSampleTypesCmd)
	rootCmd.AddCommand(listElementsCmd)
}
