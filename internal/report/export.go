package report

import (
	"fmt"
	"time"

	"github.com/qrislens/qrislens-cli/internal/utils"
)

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return utils.PrettyJSON(r)
}

// ExportJSON writes the report as indented JSON, atomically.
func (r *Report) ExportJSON(path string) error {
	b, err := utils.PrettyJSON(r)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	return nil
}

// DefaultExportName builds the timestamped filename for a report export.
func DefaultExportName(t time.Time) string {
	return fmt.Sprintf("qrislens_report_%s.json", t.Format("20060102_150405"))
}
