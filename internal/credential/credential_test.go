package credential_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MomchilovP/peachtree/internal/credential"
)

func fileConfig(dir string) credential.Config {
	return credential.Config{
		ServiceName: "peachtree-test",
		Backend:     "file",
		Dir:         dir,
		Passphrase:  "test-passphrase",
	}
}

func TestKeyring_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	k, err := credential.OpenKeyring(fileConfig(dir))
	require.NoError(t, err)

	_, ok := k.Get()
	assert.False(t, ok)

	require.NoError(t, k.Set("token-1"))

	got, ok := k.Get()
	assert.True(t, ok)
	assert.Equal(t, "token-1", got)

	reopened, err := credential.OpenKeyring(fileConfig(dir))
	require.NoError(t, err)

	got, ok = reopened.Get()
	assert.True(t, ok)
	assert.Equal(t, "token-1", got)
}

func TestKeyring_Clear(t *testing.T) {
	dir := t.TempDir()

	k, err := credential.OpenKeyring(fileConfig(dir))
	require.NoError(t, err)

	require.NoError(t, k.Clear(), "clearing an empty store is not an error")

	require.NoError(t, k.Set("token-2"))
	require.NoError(t, k.Clear())

	_, ok := k.Get()
	assert.False(t, ok)

	reopened, err := credential.OpenKeyring(fileConfig(dir))
	require.NoError(t, err)

	_, ok = reopened.Get()
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	m := credential.NewMemory("")

	_, ok := m.Get()
	assert.False(t, ok)

	require.NoError(t, m.Set("abc"))

	got, ok := m.Get()
	assert.True(t, ok)
	assert.Equal(t, "abc", got)

	require.NoError(t, m.Clear())

	_, ok = m.Get()
	assert.False(t, ok)
}
