package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampAcceptsServerFormats(t *testing.T) {
	inputs := map[string]time.Time{
		`"2024-03-05T10:20:30Z"`:        time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
		`"2024-03-05T10:20:30.1234567"`: time.Date(2024, 3, 5, 10, 20, 30, 123456700, time.UTC),
		`"2024-03-05T10:20:30"`:         time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
		`"2024-03-05"`:                  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	for raw, want := range inputs {
		var ts Timestamp
		require.NoError(t, ts.UnmarshalJSON([]byte(raw)), raw)
		assert.True(t, want.Equal(ts.Time), raw)
	}
}

func TestTimestampNullAndGarbage(t *testing.T) {
	var ts Timestamp
	require.NoError(t, ts.UnmarshalJSON([]byte("null")))
	assert.True(t, ts.IsZero())
	assert.Equal(t, "-", ts.Short())

	assert.Error(t, ts.UnmarshalJSON([]byte(`"yesterday"`)))
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace", Username: "ada"}.FullName())
	assert.Equal(t, "ada", User{Username: "ada"}.FullName())
}

func TestLookupEntityType(t *testing.T) {
	assert.Equal(t, "Quality Rules", LookupEntityType("rule").Label)

	unknown := LookupEntityType("notebook")
	assert.Equal(t, "notebook", unknown.Label)
	assert.Equal(t, "notebook", unknown.Key)
}
