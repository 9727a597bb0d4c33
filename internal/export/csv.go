package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/stitchr/internal/store"
)

func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return f.Close()
}

// RowsToCSV writes the stitch counter, one line per row.
func RowsToCSV(rows []store.Row, path string) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Name,
			strconv.Itoa(r.Completed),
			strconv.Itoa(r.Target),
			formatPercent(r.Completed, r.Target),
			r.Pattern,
			r.Notes,
			r.CreatedAt.Local().Format(time.RFC3339),
		})
	}
	return writeCSV(path, []string{"Row", "Done", "Target", "Progress", "Pattern", "Notes", "Added"}, records)
}

// YarnToCSV writes the yarn inventory, one line per entry.
func YarnToCSV(yarn []store.Yarn, path string) error {
	records := make([][]string, 0, len(yarn))
	for _, y := range yarn {
		records = append(records, []string{
			y.Type,
			y.Brand,
			y.Color,
			strconv.Itoa(y.Quantity),
			y.Project,
			y.Notes,
			y.CreatedAt.Local().Format(time.RFC3339),
		})
	}
	return writeCSV(path, []string{"Type", "Brand", "Color", "Skeins", "Project", "Notes", "Added"}, records)
}

func formatPercent(done, target int) string {
	if target <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", done*100/target)
}
