package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the data file and posts index without building",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkedConfig(); err != nil {
			return err
		}

		if _, err := loadData(true); err != nil {
			if printViolations(os.Stderr, err) {
				return validationFailed(err)
			}
			return err
		}

		entries, err := loadPostIndex()
		if err != nil {
			return err
		}

		fmt.Println("Validation successful")
		if entries != nil {
			fmt.Printf("  %s in %s\n", plural(len(entries), "post"), cfg.PostsIndex)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
