package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook_WritesRowsUnderHeader(t *testing.T) {
	wb := NewWorkbook()
	defer wb.Close()

	require.NoError(t, wb.AddSheet("Screenings"))
	require.NoError(t, wb.WriteHeader([]string{"Date", "Movie", "Rooms"}))
	require.NoError(t, wb.WriteRow("2026-10-20", "Dune", 2))
	require.NoError(t, wb.WriteRow("2026-10-21", "Alien", 1))

	var buf bytes.Buffer
	require.NoError(t, wb.Save(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Screenings"}, f.GetSheetList())

	rows, err := f.GetRows("Screenings")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Movie", "Rooms"},
		{"2026-10-20", "Dune", "2"},
		{"2026-10-21", "Alien", "1"},
	}, rows)
}

func TestWorkbook_SecondSheet(t *testing.T) {
	wb := NewWorkbook()
	defer wb.Close()

	require.NoError(t, wb.AddSheet("Summary"))
	require.NoError(t, wb.AddSheet("A sheet name that is far too long for excel"))

	var buf bytes.Buffer
	require.NoError(t, wb.Save(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "A sheet name that is far too lo"}, f.GetSheetList())
}

func TestWorkbook_RowBeforeSheet(t *testing.T) {
	wb := NewWorkbook()
	defer wb.Close()

	assert.ErrorIs(t, wb.WriteRow("x"), errNoSheet)
}
