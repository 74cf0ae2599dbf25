package sheets

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// CacheDuration is how long a fetched grid is served without touching the
// remote API.
const CacheDuration = 300 * time.Second

// Record is one data row of a sheet. RowID is the 1-based physical row
// number in the source grid (the first data row is 2) and addresses the row
// on updates.
type Record struct {
	RowID  int               `json:"row_id"`
	Fields map[string]string `json:"fields"`
}

// Sheet is a cached view over one spreadsheet. The two instances
// (certificados, diplomados) share this logic and differ only in identifiers.
type Sheet struct {
	api           ValuesAPI
	spreadsheetID string
	worksheet     string
	name          string

	mu        sync.Mutex
	cached    []Record
	headers   []string
	fetchedAt time.Time
	now       func() time.Time
}

// NewSheet builds a Sheet over the given spreadsheet. api may be nil when
// credentials failed to load; every Fetch then returns empty, matching a
// degraded but renderable listing.
func NewSheet(api ValuesAPI, spreadsheetID, worksheet, name string) *Sheet {
	return &Sheet{
		api:           api,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		name:          name,
		now:           time.Now,
	}
}

// Fetch returns the sheet's records, serving the cached copy while it is
// younger than CacheDuration. A remote failure returns an empty slice and
// leaves any previous cache entry in place.
//
// TODO: decide whether a failed refresh should fall back to the stale cache
// instead of blanking the listing until the API recovers.
func (s *Sheet) Fetch() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Sub(s.fetchedAt) < CacheDuration {
		return s.cached
	}

	if s.api == nil {
		return nil
	}

	values, err := s.api.GetValues(s.spreadsheetID, s.worksheet)
	if err != nil {
		slog.Error("error al leer la hoja", "hoja", s.name, "error", err)
		return nil
	}

	headers, records := transform(values)
	s.headers = headers
	s.cached = records
	s.fetchedAt = s.now()
	return records
}

// Update writes header-aligned values to the identified source row and
// invalidates the cache so the next Fetch refreshes. Unlike Fetch, transport
// failures propagate: the caller must know whether the edit landed.
//
// Concurrent updates to the same row are last-write-wins; no version check
// is performed.
func (s *Sheet) Update(rowID int, fields map[string]string) error {
	if s.api == nil {
		return fmt.Errorf("hoja %s: cliente de Sheets no inicializado", s.name)
	}

	headerRange := fmt.Sprintf("%s!1:1", s.worksheet)
	headerRows, err := s.api.GetValues(s.spreadsheetID, headerRange)
	if err != nil {
		return fmt.Errorf("hoja %s: leer encabezados: %w", s.name, err)
	}
	if len(headerRows) == 0 {
		return fmt.Errorf("hoja %s: sin fila de encabezados", s.name)
	}

	row := make([]interface{}, 0, len(headerRows[0]))
	for _, cell := range headerRows[0] {
		header := strings.TrimSpace(fmt.Sprint(cell))
		row = append(row, fields[header])
	}

	writeRange := fmt.Sprintf("%s!A%d", s.worksheet, rowID)
	if err := s.api.UpdateValues(s.spreadsheetID, writeRange, [][]interface{}{row}); err != nil {
		return fmt.Errorf("hoja %s: actualizar fila %d: %w", s.name, rowID, err)
	}

	s.mu.Lock()
	s.cached = nil
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
	return nil
}

// Find returns the cached record with the given row id, fetching if needed.
func (s *Sheet) Find(rowID int) (Record, bool) {
	for _, rec := range s.Fetch() {
		if rec.RowID == rowID {
			return rec, true
		}
	}
	return Record{}, false
}

// transform turns the raw grid into records. Row 1 is the header; later rows
// are keyed by non-empty header cells and tagged with their physical row
// number. Rows whose every field is blank are dropped as trailing filler.
func transform(values [][]interface{}) ([]string, []Record) {
	if len(values) == 0 {
		return nil, nil
	}

	headers := make([]string, len(values[0]))
	for i, cell := range values[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(cell))
	}

	var records []Record
	for i, row := range values[1:] {
		fields := make(map[string]string)
		empty := true
		for j, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if j < len(row) {
				value = fmt.Sprint(row[j])
			}
			fields[header] = value
			if strings.TrimSpace(value) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		records = append(records, Record{RowID: i + 2, Fields: fields})
	}
	return headers, records
}

// Filter keeps the records whose string form matches the query,
// case-insensitively. An empty query keeps everything.
func Filter(records []Record, query string) []Record {
	if query == "" {
		return records
	}
	query = strings.ToLower(query)

	var matched []Record
	for _, rec := range records {
		for _, value := range rec.Fields {
			if strings.Contains(strings.ToLower(value), query) {
				matched = append(matched, rec)
				break
			}
		}
	}
	return matched
}
