package civil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d.Time)

	d, err = Parse("2024-03-01T17:45:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String())

	_, err = Parse("01/03/2024")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	var in struct {
		Date *Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-06-30"}`), &in))
	require.NotNil(t, in.Date)
	assert.Equal(t, "2025-06-30", in.Date.String())

	out, err := json.Marshal(in.Date)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-06-30"`, string(out))

	in.Date = nil
	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &in))
	assert.Nil(t, in.Date)

	assert.Error(t, json.Unmarshal([]byte(`{"date":"tomorrow"}`), &in))
}
