package sheets

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves an in-memory grid and counts calls.
type fakeAPI struct {
	grid       [][]interface{}
	getCalls   int
	updates    []string
	getErr     error
	updateErr  error
	lastValues [][]interface{}
}

func (f *fakeAPI) GetValues(_, readRange string) ([][]interface{}, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if strings.HasSuffix(readRange, "!1:1") {
		return f.grid[:1], nil
	}
	return f.grid, nil
}

func (f *fakeAPI) UpdateValues(_, writeRange string, values [][]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, writeRange)
	f.lastValues = values

	// Apply the write to the grid the way the real API would.
	var rowID int
	fmt.Sscanf(writeRange[strings.Index(writeRange, "!A")+2:], "%d", &rowID)
	for len(f.grid) < rowID {
		f.grid = append(f.grid, nil)
	}
	f.grid[rowID-1] = values[0]
	return nil
}

func testGrid() [][]interface{} {
	return [][]interface{}{
		{"NOMBRE", "CURSO", "ESTADO"},
		{"Ana Pérez", "Enfermería", "Emitido"},
		{"Luis Soto", "Fisioterapia", "Pendiente"},
	}
}

func newTestSheet(api ValuesAPI) (*Sheet, *time.Time) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewSheet(api, "sheet-id", "Form Responses 1", "certificados")
	s.now = func() time.Time { return now }
	return s, &now
}

func TestFetchCachesWithinWindow(t *testing.T) {
	api := &fakeAPI{grid: testGrid()}
	s, now := newTestSheet(api)

	first := s.Fetch()
	require.Len(t, first, 2)
	require.Equal(t, 1, api.getCalls)

	*now = now.Add(CacheDuration - time.Second)
	second := s.Fetch()
	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.getCalls, "a fresh cache must not hit the API")

	*now = now.Add(2 * time.Second)
	s.Fetch()
	assert.Equal(t, 2, api.getCalls, "an expired cache must refresh")
}

func TestFetchFailureReturnsEmpty(t *testing.T) {
	api := &fakeAPI{grid: testGrid(), getErr: errors.New("api caída")}
	s, _ := newTestSheet(api)

	assert.Empty(t, s.Fetch())
}

func TestFetchWithNilAPIReturnsEmpty(t *testing.T) {
	s, _ := newTestSheet(nil)
	assert.Empty(t, s.Fetch())
}

func TestUpdateInvalidatesCacheAndPropagatesWrite(t *testing.T) {
	api := &fakeAPI{grid: testGrid()}
	s, _ := newTestSheet(api)

	s.Fetch()
	callsBefore := api.getCalls

	err := s.Update(2, map[string]string{
		"NOMBRE": "Ana Pérez",
		"CURSO":  "Enfermería",
		"ESTADO": "Entregado",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Form Responses 1!A2"}, api.updates)

	records := s.Fetch()
	assert.Greater(t, api.getCalls, callsBefore+1, "fetch after update must hit the API")

	rec, ok := s.Find(2)
	require.True(t, ok)
	assert.Equal(t, "Entregado", rec.Fields["ESTADO"])
	require.Len(t, records, 2)
}

func TestUpdateFailurePropagatesAndKeepsCache(t *testing.T) {
	api := &fakeAPI{grid: testGrid()}
	s, _ := newTestSheet(api)

	s.Fetch()
	api.updateErr = errors.New("sin permisos")

	err := s.Update(2, map[string]string{"ESTADO": "x"})
	require.Error(t, err)

	calls := api.getCalls
	s.Fetch()
	// The failed update read the header row but must not have invalidated
	// the cached records.
	assert.Equal(t, calls, api.getCalls)
}

func TestTransformDropsBlankRowsAndNumbersFromTwo(t *testing.T) {
	values := [][]interface{}{
		{"A", "B"},
		{"x", "y"},
		{"", ""},
	}
	headers, records := transform(values)

	assert.Equal(t, []string{"A", "B"}, headers)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].RowID)
	assert.Equal(t, map[string]string{"A": "x", "B": "y"}, records[0].Fields)
}

func TestTransformSkipsEmptyHeadersAndShortRows(t *testing.T) {
	values := [][]interface{}{
		{"A", "", "C"},
		{"x"},
	}
	_, records := transform(values)

	require.Len(t, records, 1)
	assert.Equal(t, map[string]string{"A": "x", "C": ""}, records[0].Fields)
	_, hasBlank := records[0].Fields[""]
	assert.False(t, hasBlank)
}

func TestFilterMatchesAnyFieldCaseInsensitive(t *testing.T) {
	records := []Record{
		{RowID: 2, Fields: map[string]string{"NOMBRE": "Ana Pérez", "CURSO": "Enfermería"}},
		{RowID: 3, Fields: map[string]string{"NOMBRE": "Luis Soto", "CURSO": "Fisioterapia"}},
	}

	assert.Len(t, Filter(records, ""), 2)
	assert.Len(t, Filter(records, "soto"), 1)
	assert.Len(t, Filter(records, "TERAPIA"), 1)
	assert.Empty(t, Filter(records, "inexistente"))
}
