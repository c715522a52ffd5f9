package mobilestore

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var cmdLog = GetLogger("cmd")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "worker",
	Short: "mobilestore worker scrapes phone specifications into the catalog",
}

// ExecuteCmd run the worker from the command line
// crawl fetches dynamic data from the results listing, --seed ingests a
// placeholder json file instead
func ExecuteCmd(engine *IngestEngine) {
	var resultsURL string
	var limit int
	var seedPath string

	var crawlCmd = &cobra.Command{
		Use:   "crawl",
		Short: "Fetch phone data and insert it into the catalog",
		Run: func(_ *cobra.Command, _ []string) {
			ctx := context.Background()
			var summary *Summary
			var err error
			if seedPath != "" {
				cmdLog.Infof("Ingesting seed file %s", seedPath)
				summary, err = engine.RunSeedFile(ctx, afero.NewOsFs(), seedPath)
			} else {
				cmdLog.Infof("Crawling %s (limit %d)", resultsURL, limit)
				summary, err = engine.Run(ctx, resultsURL, limit)
			}
			if err != nil {
				cmdLog.Errorf("Run aborted: %s", err.Error())
				return
			}
			fmt.Println(summary)
		},
	}
	crawlCmd.Flags().StringVarP(&resultsURL, "url", "u", GsmArenaResultsURL, "results listing url to crawl")
	crawlCmd.Flags().IntVarP(&limit, "limit", "l", 30, "maximum number of candidates to process, 0 keeps all")
	crawlCmd.Flags().StringVarP(&seedPath, "seed", "s", "", "ingest a placeholder json file instead of crawling")
	rootCmd.AddCommand(crawlCmd)

	err := rootCmd.Execute()
	if err != nil {
		panic(err.Error())
	}
}
