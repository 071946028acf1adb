package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// tableWriter streams aligned rows to stdout. Rows are written as they
// arrive; flush must be called before the command returns.
type tableWriter struct {
	tw *tabwriter.Writer
}

func newTableWriter(headers ...string) *tableWriter {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	rule := make([]string, len(headers))
	for i, h := range headers {
		rule[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(rule, "\t"))

	return &tableWriter{tw: tw}
}

func (t *tableWriter) row(cols ...string) {
	fmt.Fprintln(t.tw, strings.Join(cols, "\t"))
}

func (t *tableWriter) flush() {
	t.tw.Flush()
}

// printStructured emits v as JSON or YAML depending on --output. Table
// output never reaches here; commands build a tableWriter for that case.
func printStructured(v interface{}) error {
	if getOutputFormat() == "yaml" {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// clip bounds a cell value so wide titles do not blow out the table.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max < 4 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

var severityMarks = map[string]string{
	"critical": "!!",
	"high":     " !",
	"medium":   " ~",
	"low":      "  ",
}

func severityLabel(severity string) string {
	mark, ok := severityMarks[strings.ToLower(severity)]
	if !ok {
		return severity
	}
	return mark + " " + strings.ToUpper(severity)
}

var statusMarks = map[string]string{
	"active":        "+",
	"resolved":      "+",
	"closed":        "+",
	"healthy":       "+",
	"normal":        "+",
	"mitigated":     "~",
	"paused":        "~",
	"elevated":      "~",
	"error":         "-",
	"failed":        "-",
	"critical":      "-",
	"open":          "*",
	"investigating": "*",
	"analyzing":     "*",
}

func statusLabel(status string) string {
	mark, ok := statusMarks[strings.ToLower(status)]
	if !ok {
		return status
	}
	return "[" + mark + "] " + status
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
