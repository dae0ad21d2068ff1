package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/info"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the data file",
	Long: `Prints a JSON Schema describing data/info.json. Point your editor at it
to get completion and inline errors while editing the data file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := info.JSONSchema()
		if err != nil {
			return err
		}
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing schema: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Schema written to %s\n", path)
			return nil
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	schemaCmd.Flags().StringP("output", "o", "", "write the schema to a file instead of stdout")
	rootCmd.AddCommand(schemaCmd)
}
