package categorize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenserule/cmd/categorize"
)

func TestCategorizeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "categorize MERCHANT", categorize.Cmd.Use)
	assert.Contains(t, categorize.Cmd.Short, "Schedule C category")
	assert.Contains(t, categorize.Cmd.Long, "corrections")
	assert.NotNil(t, categorize.Cmd.RunE)
	assert.NotNil(t, categorize.Cmd.Args)
}

func TestCategorizeCommand_Flags(t *testing.T) {
	noInfer := categorize.Cmd.Flags().Lookup("no-infer")
	require.NotNil(t, noInfer)
	assert.Equal(t, "false", noInfer.DefValue)

	asJSON := categorize.Cmd.Flags().Lookup("json")
	require.NotNil(t, asJSON)
	assert.Equal(t, "false", asJSON.DefValue)
}

func TestCategorizeCommand_RequiresMerchantArg(t *testing.T) {
	err := categorize.Cmd.Args(categorize.Cmd, []string{})
	assert.Error(t, err)

	err = categorize.Cmd.Args(categorize.Cmd, []string{"Uber"})
	assert.NoError(t, err)

	err = categorize.Cmd.Args(categorize.Cmd, []string{"Uber", "extra"})
	assert.Error(t, err)
}
