package setup

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenserule/cmd/root"
	"expenserule/internal/config"
	"expenserule/internal/keyfile"
)

func TestSetupCommand_StoresKey(t *testing.T) {
	dir := t.TempDir()
	root.Cfg = &config.Config{}
	root.Cfg.Data.Directory = dir

	apiKey = "test-key-123"
	defer func() { apiKey = "" }()

	buf := new(bytes.Buffer)
	Cmd.SetOut(buf)

	require.NoError(t, setupFunc(Cmd, nil))

	key, err := keyfile.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "test-key-123", key)
	assert.Contains(t, buf.String(), dir)
}

func TestSetupCommand_RejectsEmptyKey(t *testing.T) {
	root.Cfg = &config.Config{}
	root.Cfg.Data.Directory = t.TempDir()

	apiKey = "   "
	defer func() { apiKey = "" }()

	err := setupFunc(Cmd, nil)
	assert.Error(t, err)
}

func TestSetupCommand_Metadata(t *testing.T) {
	assert.Equal(t, "setup", Cmd.Use)
	assert.Contains(t, Cmd.Long, "GEMINI_API_KEY")
	assert.NotNil(t, Cmd.RunE)
}
