package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querydeck/internal/domain"
)

func TestParseExpression(t *testing.T) {
	edits, err := ParseExpression(`status:Active tag:finance owner:"Data Team"`, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []FilterSet{
		{Key: "status", Value: "Active"},
		{Key: "tag", Value: "finance"},
		{Key: "owner", Value: "Data Team"},
	}, edits)
}

func TestParseExpressionClearsDroppedKeys(t *testing.T) {
	current := map[string]string{"status": "Active", "type": "Chart", "tag": ""}
	edits, err := ParseExpression("status:Draft", current, nil)
	require.NoError(t, err)
	assert.Equal(t, []FilterSet{
		{Key: "status", Value: "Draft"},
		{Key: "type"},
	}, edits)
}

func TestParseExpressionEmptyClearsEverything(t *testing.T) {
	edits, err := ParseExpression("  ", map[string]string{"status": "Active"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []FilterSet{{Key: "status"}}, edits)
}

func TestParseExpressionErrors(t *testing.T) {
	allowed := func(key string) bool { return key == "status" }

	_, err := ParseExpression("Active", nil, allowed)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ParseExpression("colour:red", nil, allowed)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), `unknown filter "colour"`)

	_, err = ParseExpression(`status:"unterminated`, nil, allowed)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFormatExpressionRoundTrip(t *testing.T) {
	filters := map[string]string{"tag": "finance", "owner": `Data "Core" Team`, "status": ""}
	expr := FormatExpression(filters)
	assert.Equal(t, `owner:"Data \"Core\" Team" tag:finance`, expr)

	edits, err := ParseExpression(expr, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []FilterSet{
		{Key: "owner", Value: `Data "Core" Team`},
		{Key: "tag", Value: "finance"},
	}, edits)
}
