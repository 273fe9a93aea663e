// package formatter exports measurement results and jump history to various
// formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jumptools/airtime/internal/models"
	"github.com/jumptools/airtime/internal/physics"
)

// ShareText renders a single result as the short line users copy or share.
func ShareText(heightCm, flightTime float64) string {
	return fmt.Sprintf("Jump: %.1f cm · flight %s", heightCm, physics.FormatDuration(flightTime))
}

// HistoryToCSV converts a user's history to CSV with columns: ID, Date, Height (cm), Flight Time (s), Note
func HistoryToCSV(records []models.JumpRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Date", "Height (cm)", "Flight Time (s)", "Note"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ID,
			record.Date.Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(record.HeightCm, 'f', 1, 64),
			strconv.FormatFloat(record.FlightTime, 'f', 3, 64),
			record.Note,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// HistoryToMarkdown converts a user's history to a Markdown table.
func HistoryToMarkdown(user models.UserProfile, records []models.JumpRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Jump history: %s\n\n", user.Name))
	buf.WriteString(fmt.Sprintf("**Records**: %d\n\n", len(records)))

	if len(records) == 0 {
		buf.WriteString("No saved jumps yet.\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| Date | Height (cm) | Flight time | Note |\n")
	buf.WriteString("|------|-------------|-------------|------|\n")
	for _, record := range records {
		buf.WriteString(fmt.Sprintf("| %s | %.1f | %s | %s |\n",
			record.Date.Format("2006-01-02 15:04"),
			record.HeightCm,
			physics.FormatDuration(record.FlightTime),
			record.Note,
		))
	}

	return buf.Bytes(), nil
}

// HistoryToText converts a user's history to plain text.
func HistoryToText(user models.UserProfile, records []models.JumpRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Jump history: %s\n", user.Name))
	buf.WriteString(fmt.Sprintf("Records: %d\n\n", len(records)))

	for i, record := range records {
		buf.WriteString(fmt.Sprintf("%d. %s  %.1f cm  (flight %s)",
			i+1,
			record.Date.Format("2006-01-02 15:04"),
			record.HeightCm,
			physics.FormatDuration(record.FlightTime),
		))
		if record.Note != "" {
			buf.WriteString("  " + record.Note)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}
