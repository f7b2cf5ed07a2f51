package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders the quality report as a Markdown summary.
func RenderMarkdown(r *QualityReport) string {
	var sb strings.Builder

	sb.WriteString("# Preprocessing Summary\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Recipe | %s |\n", r.Recipe))
	sb.WriteString(fmt.Sprintf("| Rows | %d |\n", r.Rows))
	sb.WriteString(fmt.Sprintf("| Features | %d |\n", r.Columns))
	sb.WriteString(fmt.Sprintf("| Date Range | %s to %s |\n",
		r.DateStart.Format("2006-01-02"), r.DateEnd.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("| NaN Total | %d |\n", r.TotalNaN()))
	sb.WriteString("\n")

	sb.WriteString("## Columns\n\n")
	sb.WriteString(strings.Join(r.ColumnNames, ", "))
	sb.WriteString("\n")

	if len(r.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range r.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	return sb.String()
}
