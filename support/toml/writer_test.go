package toml

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Exchange string              `toml:"EXCHANGE"`
	Keys     ExchangeAPIKeysToml `toml:"EXCHANGE_API_KEYS"`
}

func TestWriteFile(t *testing.T) {
	dir, e := ioutil.TempDir("", "cexdemo")
	require.NoError(t, e)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "sample.cfg")
	e = WriteFile(path, sample{
		Exchange: "kraken",
		Keys:     ExchangeAPIKeysToml{{Key: "public", Secret: "private"}},
	})
	require.NoError(t, e)

	data, e := ioutil.ReadFile(path)
	require.NoError(t, e)
	assert.Contains(t, string(data), `EXCHANGE = "kraken"`)
	assert.Contains(t, string(data), "[[EXCHANGE_API_KEYS]]")
	assert.Contains(t, string(data), `SECRET = "private"`)

	e = WriteFile(filepath.Join(dir, "missing", "sample.cfg"), sample{})
	assert.Error(t, e)
}

func TestExchangeAPIKeysToml(t *testing.T) {
	keys := ExchangeAPIKeysToml{{Key: "a", Secret: "b"}, {Key: "c", Secret: "d"}}

	apiKeys := keys.ToExchangeAPIKeys()
	require.Len(t, apiKeys, 2)
	assert.Equal(t, "c", apiKeys[1].Key)
	assert.Equal(t, "d", apiKeys[1].Secret)

	keys.Wipe()
	assert.Equal(t, ExchangeAPIKeysToml{{}, {}}, keys)
	// converted copies are independent of the wiped config
	assert.Equal(t, "b", apiKeys[0].Secret)
}
