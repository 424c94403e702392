// package formatter renders events as tables, CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/spotlite/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// FormatPrice renders a price the way the event cards show it, e.g. "₹499 Onwards".
func FormatPrice(price float64) string {
	return fmt.Sprintf("₹%s Onwards", strconv.FormatFloat(price, 'f', -1, 64))
}

// EventTable renders events as a bordered terminal table in the given order.
func EventTable(events models.EventCollection) string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{e.ID, e.Name, e.Badge(), e.Location, e.Date, e.Time, FormatPrice(e.Price)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "NAME", "GENRE", "LOCATION", "DATE", "TIME", "PRICE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// EventDetails renders the details page of a single event.
func EventDetails(e models.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]\n", e.Name, e.Badge())
	fmt.Fprintf(&b, "When:     %s %s\n", e.Date, e.Time)
	fmt.Fprintf(&b, "Where:    %s\n", e.Location)
	fmt.Fprintf(&b, "Price:    %s\n", FormatPrice(e.Price))
	if img := e.CoverImage(); img != "" {
		fmt.Fprintf(&b, "Image:    %s\n", img)
	}
	fmt.Fprintf(&b, "Event ID: %s\n", e.ID)
	if e.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", e.Description)
	}
	return b.String()
}

// ExportToCSV converts events to CSV with columns: ID, Name, Category, Location, Date, Time, Price, Image, OrganizerID
func ExportToCSV(events models.EventCollection) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Category", "Location", "Date", "Time", "Price", "Image", "OrganizerID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range events {
		record := []string{
			e.ID,
			e.Name,
			string(e.Category),
			e.Location,
			e.Date,
			e.Time,
			strconv.FormatFloat(e.Price, 'f', -1, 64),
			e.CoverImage(),
			e.OrganizerID,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts events to a Markdown document titled title.
//
// images maps event IDs to local image paths; events without an entry link their remote cover.
func ExportToMarkdown(title string, events models.EventCollection, images map[string]string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Events**: %d\n\n", len(events))

	for _, e := range events {
		fmt.Fprintf(&buf, "## %s\n\n", e.Name)

		img := images[e.ID]
		if img == "" {
			img = e.CoverImage()
		}
		if img != "" {
			fmt.Fprintf(&buf, "![%s](%s)\n\n", e.Name, img)
		}

		fmt.Fprintf(&buf, "- **Genre**: %s\n", e.Category)
		fmt.Fprintf(&buf, "- **Location**: %s\n", e.Location)
		fmt.Fprintf(&buf, "- **When**: %s %s\n", e.Date, e.Time)
		fmt.Fprintf(&buf, "- **Price**: %s\n\n", FormatPrice(e.Price))

		if e.Description != "" {
			fmt.Fprintf(&buf, "%s\n\n", e.Description)
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts events to plain text format
func ExportToText(events models.EventCollection) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Events: %d\n\n", len(events))
	for i, e := range events {
		fmt.Fprintf(&buf, "%d. %s - %s, %s %s (%s)\n", i+1, e.Name, e.Location, e.Date, e.Time, FormatPrice(e.Price))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ImageExtension guesses a file extension from an image URL, defaulting to ".jpg".
func ImageExtension(url string) string {
	path := url
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if i := strings.LastIndex(path, "."); i >= 0 && i > strings.LastIndex(path, "/") {
		switch ext := strings.ToLower(path[i:]); ext {
		case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg":
			return ext
		}
	}
	return ".jpg"
}
