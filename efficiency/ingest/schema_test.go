package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate_EIAHeadersWithEmbeddedNewlines(t *testing.T) {
	// GIVEN the header exactly as EIA-923 publishes it
	header := []string{
		"Plant Id",
		"Plant State",
		"Total Fuel Consumption\nMMBtu",
		"Elec Fuel Consumption\nMMBtu",
		"Net Generation\n(Megawatthours)",
	}

	// WHEN the default columns are located
	idx, err := DefaultColumns().locate(header)

	// THEN each name maps to its position
	require.NoError(t, err)
	assert.Equal(t, columnIndex{state: 1, fuel: 2, generation: 4}, idx)
}

func TestLocate_CaseAndSpacingInsensitive(t *testing.T) {
	header := []string{"\ufeffplant  state", "TOTAL FUEL CONSUMPTION MMBTU", " net generation (megawatthours) "}

	idx, err := DefaultColumns().locate(header)

	require.NoError(t, err)
	assert.Equal(t, columnIndex{state: 0, fuel: 1, generation: 2}, idx)
}

func TestLocate_DuplicateName_FirstWins(t *testing.T) {
	header := []string{"Plant State", "Total Fuel Consumption MMBtu", "Net Generation (Megawatthours)", "Plant State"}

	idx, err := DefaultColumns().locate(header)

	require.NoError(t, err)
	assert.Equal(t, 0, idx.state)
}

func TestLocate_MissingColumn_SchemaError(t *testing.T) {
	// GIVEN a header without the generation column
	header := []string{"Plant State", "Total Fuel Consumption MMBtu"}

	// WHEN located
	_, err := DefaultColumns().locate(header)

	// THEN the error is a schema error naming the column
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), "Net Generation (Megawatthours)")
}

func TestColumnIndex_Record_ShortRow(t *testing.T) {
	idx := columnIndex{state: 0, fuel: 1, generation: 3}

	_, ok := idx.record([]string{"TX", "1", "2"})
	assert.False(t, ok)

	raw, ok := idx.record([]string{"TX", "1", "x", "2"})
	require.True(t, ok)
	assert.Equal(t, RawRecord{State: "TX", Fuel: "1", Generation: "2"}, raw)
}
