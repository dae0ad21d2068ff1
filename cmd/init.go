package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/info"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize folio configuration with an interactive wizard",
	Long: `Runs an interactive wizard that writes a .folio.yml file and, unless one
exists, a starter data file that passes validation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}

		if _, err := os.Stat(res.Config.DataFile); err == nil {
			fmt.Printf("Keeping existing %s\n", res.Config.DataFile)
			return nil
		}
		doc := info.Starter(res.Config.Title, res.OwnerName, res.Affiliation)
		if err := info.WriteFile(res.Config.DataFile, doc); err != nil {
			return err
		}
		fmt.Printf("Starter data written to %s\n", res.Config.DataFile)
		fmt.Println("Edit it, then run `folio serve` to preview your site.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
