package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qrislens/qrislens-cli/internal/dataset"
	"github.com/qrislens/qrislens-cli/internal/utils"
)

var genCmd = &cobra.Command{
	Use:   "gen <path>",
	Short: "Write the deterministic demonstration dataset to a file",
	Long:  `Writes the built-in synthetic provincial dataset as a benchmarks JSON document or a CSV table, chosen by file extension. The generator is seeded, so repeated runs produce identical files.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ds := dataset.Synthetic()
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			err = writeBenchmarksJSON(ds, path)
		case ".csv":
			err = writeBenchmarksCSV(ds, path)
		default:
			return fmt.Errorf("unsupported extension %q (use .json or .csv)", filepath.Ext(path))
		}
		if err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d provinces to %s\n", ds.Len(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
}

func writeBenchmarksJSON(ds *dataset.Dataset, path string) error {
	matrix := make([]map[string]any, 0, ds.Len())
	for _, r := range ds.Regions() {
		row := map[string]any{"province": r.Name}
		if r.Group != "" {
			row["bi_region"] = r.Group
		}
		for k, v := range r.Metrics {
			row[k] = v
		}
		matrix = append(matrix, row)
	}
	doc := map[string]any{
		"metadata":        map[string]any{"source": "synthetic", "provinces": ds.Len()},
		"regional_matrix": matrix,
	}
	b, err := utils.PrettyJSON(doc)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, b)
}

func writeBenchmarksCSV(ds *dataset.Dataset, path string) error {
	metrics := ds.MetricNames()
	sort.Strings(metrics)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"province", "bi_region"}, metrics...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range ds.Regions() {
		rec := []string{r.Name, r.Group}
		for _, m := range metrics {
			if v, ok := r.Metric(m); ok {
				rec = append(rec, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				rec = append(rec, "")
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
