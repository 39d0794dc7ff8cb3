// Package export writes stored transcripts to spreadsheet files for
// manual review.
package export

import (
	"fmt"

	"github.com/tealeg/xlsx"

	"fastsearch/internal/app/model"
)

// ToExcel writes one sheet of merged transcript segments.
func ToExcel(segments []model.Segment, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcript")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "Video ID"
	headerRow.AddCell().Value = "Segment"
	headerRow.AddCell().Value = "Start"
	headerRow.AddCell().Value = "End"
	headerRow.AddCell().Value = "Kind"
	headerRow.AddCell().Value = "Text"

	for _, segment := range segments {
		row := sheet.AddRow()
		row.AddCell().Value = segment.VideoID
		row.AddCell().Value = fmt.Sprint(segment.SegmentID)
		row.AddCell().Value = formatOffset(segment.Start)
		row.AddCell().Value = formatOffset(segment.End)
		row.AddCell().Value = string(segment.Kind)
		row.AddCell().Value = segment.Text
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputFilePath, err)
	}
	return nil
}

// formatOffset renders a second offset as HH:MM:SS.
func formatOffset(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
