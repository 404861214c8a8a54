package summary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenserule/cmd/summary"
)

func TestSummaryCommand_Metadata(t *testing.T) {
	assert.Equal(t, "summary", summary.Cmd.Use)
	assert.Contains(t, summary.Cmd.Short, "totals")
	assert.Contains(t, summary.Cmd.Long, "Schedule C")
	assert.NotNil(t, summary.Cmd.RunE)
}

func TestSummaryCommand_JSONFlag(t *testing.T) {
	flag := summary.Cmd.Flags().Lookup("json")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}
