package commands_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/sealwalk/internal/commands"
	"github.com/idelchi/sealwalk/internal/config"
	"github.com/idelchi/sealwalk/internal/encryption"
)

// The commands share the global viper instance, so these tests do not run in parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer

	root := commands.NewRootCommand(&config.Config{}, "test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

// captureStdout returns what fn writes to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	stdout := os.Stdout
	os.Stdout = w

	defer func() { os.Stdout = stdout }()

	done := make(chan []byte)

	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	fn()

	require.NoError(t, w.Close())

	return string(<-done)
}

func hexKey(t *testing.T) string {
	t.Helper()

	key, err := encryption.GenerateKey()
	require.NoError(t, err)

	return encryption.EncodeKey(key)
}

func TestKeygenCommand(t *testing.T) {
	out, err := execute(t, "keygen")
	require.NoError(t, err)

	_, err = encryption.DecodeKey(out)
	require.NoError(t, err)
}

func TestEncryptDecryptCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(path, []byte("classified"), 0o600))

	key := hexKey(t)

	_, err := execute(t, "encrypt", "-k", key, "-i", ".txt", "--cipher", "chacha20-poly1305", dir)
	require.NoError(t, err)

	_, err = os.Stat(path + ".enc")
	require.NoError(t, err)

	_, err = execute(t, "decrypt", "-k", key, "--cipher", "chacha20-poly1305", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "classified", string(data))
}

func TestEncryptRequiresInclude(t *testing.T) {
	_, err := execute(t, "encrypt", "-k", hexKey(t), t.TempDir())
	require.ErrorIs(t, err, config.ErrUsage)
}

func TestKeyFlagsAreExclusive(t *testing.T) {
	_, err := execute(t, "decrypt", "-k", hexKey(t), "-f", "key.txt", t.TempDir())
	require.ErrorIs(t, err, config.ErrUsage)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestShowMasksKey(t *testing.T) {
	key := hexKey(t)

	var err error

	out := captureStdout(t, func() {
		_, err = execute(t, "encrypt", "--show", "-k", key, "-i", ".txt,.md", "dir")
	})
	require.True(t, commands.IsShown(err))
	assert.NotContains(t, out, key)

	var shown config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))

	assert.Equal(t, []string{".txt", ".md"}, shown.Include)
	assert.Equal(t, []string{"dir"}, shown.Paths)
	assert.Equal(t, encryption.DefaultSuffix, shown.Suffix)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "sealwalk.yaml")

	content := strings.Join([]string{
		"cipher: chacha20-poly1305",
		"suffix: .sealed",
		"include: [.csv]",
	}, "\n")
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o600))

	var err error

	out := captureStdout(t, func() {
		_, err = execute(t, "encrypt", "--show", "--config", cfgFile)
	})
	require.True(t, commands.IsShown(err))

	var shown config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))

	assert.Equal(t, "chacha20-poly1305", shown.Cipher)
	assert.Equal(t, ".sealed", shown.Suffix)
	assert.Equal(t, []string{".csv"}, shown.Include)
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("SEALWALK_CIPHER", "chacha20-poly1305")

	var err error

	out := captureStdout(t, func() {
		_, err = execute(t, "decrypt", "--show")
	})
	require.True(t, commands.IsShown(err))

	var shown config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))

	assert.Equal(t, "chacha20-poly1305", shown.Cipher)
	assert.True(t, shown.Decrypt)
}

func TestUnknownSubcommand(t *testing.T) {
	_, err := execute(t, "encrpyt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encrpyt")
}
