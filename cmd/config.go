package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cfgpkg "github.com/geoscience-tools/geochemtools/internal/config"
)

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Display the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if c == nil {
			loaded, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			c = loaded
		}
		b, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(b))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "config-path",
	Short: "Display the path to the user-editable config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cfgpkg.Path(cfgFile)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(configPathCmd)
}
