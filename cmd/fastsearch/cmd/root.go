package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"fastsearch/cmd/fastsearch/cmd/export"
	"fastsearch/cmd/fastsearch/cmd/index"
	"fastsearch/cmd/fastsearch/cmd/scrape"
	"fastsearch/cmd/fastsearch/cmd/serve"
	"fastsearch/cmd/fastsearch/cmd/version"
	"fastsearch/cmd/fastsearch/cmd/worker"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fastsearch",
	Short: "Semantic search over lecture videos",
	Long: `Semantic search over lecture videos.
- index builds the vector index from scraped video metadata and transcripts
- serve runs the retrieve-and-rerank query API
- worker runs durable indexing jobs on Temporal`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(index.Cmd)
	rootCmd.AddCommand(worker.Cmd)
	rootCmd.AddCommand(scrape.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
