package reporting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// RenderFrameCSV renders a frame as a CSV string with a Date column first.
// NaN cells render as empty.
func RenderFrameCSV(f *domain.Frame) string {
	var sb strings.Builder

	// Header
	sb.WriteString("Date")
	for _, name := range f.Columns() {
		sb.WriteString(",")
		sb.WriteString(name)
	}
	sb.WriteString("\n")

	// Rows
	columns := f.Columns()
	for i := 0; i < f.Len(); i++ {
		sb.WriteString(f.Date(i).Format("2006-01-02"))
		for _, name := range columns {
			x, _ := f.Column(name)
			sb.WriteString(",")
			if !math.IsNaN(x[i]) {
				sb.WriteString(fmt.Sprintf("%.6f", x[i]))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteFrameCSV writes a frame as CSV, creating parent directories as needed.
func WriteFrameCSV(f *domain.Frame, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(RenderFrameCSV(f)), 0o644); err != nil {
		return fmt.Errorf("write features csv: %w", err)
	}
	return nil
}
