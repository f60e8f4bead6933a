package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Format represents the export format type.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Export writes a trace to the given file path, or stdout when the
// path is empty.
func Export(t *Trace, format Format, filePath string) error {
	w, closer, err := getWriter(filePath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	switch format {
	case FormatJSON:
		return exportJSON(w, t)
	case FormatCSV:
		return exportCSV(w, t)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func getWriter(filePath string) (io.Writer, io.Closer, error) {
	if filePath == "" {
		return os.Stdout, nil, nil
	}

	f, err := os.Create(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f, nil
}

func exportJSON(w io.Writer, t *Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(t); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return nil
}

// exportCSV writes one row per executed call.
func exportCSV(w io.Writer, t *Trace) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"trace_id", "method", "path", "url", "status_code", "duration_ms", "error", "findings"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, record := range t.Calls {
		row := []string{
			t.ID,
			record.Request.Method,
			record.Request.Path,
			record.URL,
			strconv.Itoa(record.StatusCode),
			strconv.FormatInt(record.Duration.Milliseconds(), 10),
			record.Error,
			strconv.Itoa(len(record.Findings)),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
