package handler

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/pkordes/habit-trail/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"visit_id", "visited_at", "destination_id", "destination_name",
	"address", "latitude", "longitude", "note",
}

// GetExport handles GET /export.
// It returns one row per visit, newest first, honouring the /visits filters
// (period defaults to week; pass period=all for everything).
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := queryParam(r.URL.Query(), "format", &format); err != nil {
		writeError(w, r, err)
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		badRequest(w, "format must be csv or json")
		return
	}

	f, err := historyFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rows, err := s.history.Export(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if format != nil && *format == "csv" {
		writeCSV(w, r, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to the JSON response type.
func buildJSONRows(rows []domain.ExportRow) []ExportRowResponse {
	out := make([]ExportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportRowResponse(r))
	}
	return out
}

// writeCSV streams rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, r *http.Request, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="visits-%s.csv"`, time.Now().Format("20060102")))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeaders)
	for _, row := range rows {
		_ = cw.Write(rowToCSVRecord(row))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.ErrorContext(r.Context(), "write csv export", "error", err)
	}
}

// rowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func rowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.VisitID,
		r.VisitedAt.Format(time.RFC3339),
		r.DestinationID,
		r.DestinationName,
		r.Address,
		strconv.FormatFloat(r.Latitude, 'f', -1, 64),
		strconv.FormatFloat(r.Longitude, 'f', -1, 64),
		r.Note,
	}
}
