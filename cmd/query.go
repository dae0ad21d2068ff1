package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List publications, or blog posts, from the command line",
	Long: `Filters, sorts and groups the publications exactly as the publications
page does and prints them by year. With --posts the blog index is listed
instead; --search and --category then apply to posts.`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("search", "", "case-insensitive text to match")
	queryCmd.Flags().StringSlice("year", nil, "years to keep (repeatable, or comma separated)")
	queryCmd.Flags().StringSlice("type", nil, "publication types to keep")
	queryCmd.Flags().Bool("featured", false, "only featured publications")
	queryCmd.Flags().String("sort", string(query.SortYearDesc), "year_desc, year_asc or title_az")
	queryCmd.Flags().Bool("posts", false, "list blog posts instead of publications")
	queryCmd.Flags().String("category", "", "blog category to keep (with --posts)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	search, _ := cmd.Flags().GetString("search")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if listPosts, _ := cmd.Flags().GetBool("posts"); listPosts {
		category, _ := cmd.Flags().GetString("category")
		entries, err := loadPosts()
		if err != nil {
			return err
		}
		if entries == nil {
			fmt.Println("The site has no blog.")
			return nil
		}
		matched := query.FilterPosts(entries, query.PostFilter{Search: search, Category: category})
		if jsonOutput {
			return printJSON(matched)
		}
		return query.WritePostsText(os.Stdout, matched)
	}

	years, _ := cmd.Flags().GetStringSlice("year")
	types, _ := cmd.Flags().GetStringSlice("type")
	featured, _ := cmd.Flags().GetBool("featured")
	sortFlag, _ := cmd.Flags().GetString("sort")
	sort, err := query.ParseSortMode(sortFlag)
	if err != nil {
		return err
	}

	doc, err := loadData(false)
	if err != nil {
		return err
	}
	if doc.Publications == nil || len(doc.Publications.Items) == 0 {
		fmt.Println("The portfolio lists no publications.")
		return nil
	}

	res := query.Query(doc.Publications.Items, query.PubState{
		Filter: query.PubFilter{Search: search, Years: years, Types: types, FeaturedOnly: featured},
		Sort:   sort,
	}, doc.Publications.Settings)

	if jsonOutput {
		return printJSON(res)
	}
	if res.Matched == 0 {
		fmt.Printf("No publications match. %s in total.\n", plural(res.Total, "publication"))
		return nil
	}
	return query.WriteText(os.Stdout, res)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
