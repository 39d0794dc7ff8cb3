package export

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"fastsearch/internal/app/export"
	"fastsearch/internal/app/repository/sqlite"
	"fastsearch/internal/config"
)

var videoID string
var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&videoID, "video", "v", "", "video id to export")
	Cmd.Flags().StringVarP(&outputFilePath, "output", "o", "", "output xlsx path")

	Cmd.MarkFlagRequired("video")
	Cmd.MarkFlagRequired("output")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored transcript to excel",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}

		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		dao := sqlite.NewRunDAO(db)
		segments, err := dao.Transcript(context.Background(), videoID)
		if err != nil {
			log.Fatal(err)
		}
		if len(segments) == 0 {
			log.Fatalf("no stored transcript for video %s", videoID)
		}

		if err := export.ToExcel(segments, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
