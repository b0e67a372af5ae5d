package application

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/bnema/studypomo/internal/domain"
)

const utf8BOM = "\uFEFF"

var csvHeader = []string{"date", "duration", "mode", "focus", "section"}

// Export writes every stored session in the requested format.
func (s *DataService) Export(ctx context.Context, w io.Writer, format ExportFormat) (int, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return 0, err
	}

	switch format {
	case ExportCSV:
		err = writeCSV(w, snapshot.Sessions)
	case ExportJSON:
		err = writeJSON(w, snapshot)
	default:
		_, err = ParseExportFormat(string(format))
	}
	if err != nil {
		return 0, err
	}

	return len(snapshot.Sessions), nil
}

func writeCSV(w io.Writer, sessions []domain.Session) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, session := range sessions {
		record := []string{
			session.Date,
			strconv.Itoa(session.Duration),
			string(session.Mode),
			string(session.Focus),
			session.SectionOrDefault(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", session.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

func writeJSON(w io.Writer, snapshot domain.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
