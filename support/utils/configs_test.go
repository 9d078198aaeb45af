package utils

import (
	"testing"

	"github.com/openlyinc/pointy"
	"github.com/stretchr/testify/assert"
)

type innerConfig struct {
	Label string `toml:"LABEL"`
}

type sampleConfig struct {
	Name      string            `toml:"NAME"`
	Secret    string            `toml:"SECRET"`
	Keys      []string          `toml:"KEYS"`
	Precision *float64          `toml:"PRECISION"`
	Missing   *float64          `toml:"MISSING"`
	Inner     innerConfig       `toml:"INNER"`
	Addresses map[string]string `toml:"ADDRESSES"`
	hidden    string
}

func TestStructString(t *testing.T) {
	cfg := sampleConfig{
		Name:      "demo",
		Secret:    "s3cr3t",
		Keys:      []string{"a", "b"},
		Precision: pointy.Float64(0.5),
		Inner:     innerConfig{Label: "Binance"},
		Addresses: map[string]string{"Binance": "rXYZ"},
		hidden:    "x",
	}

	s := StructString(cfg, 0, map[string]func(interface{}) interface{}{
		"SECRET": Hide,
		"KEYS":   HideKeys,
	})

	assert.Equal(t, "NAME: demo\n"+
		"SECRET: \n"+
		"KEYS: [2 hidden]\n"+
		"PRECISION: 0.5\n"+
		"MISSING: <nil>\n"+
		"INNER:\n"+
		"    LABEL: Binance\n"+
		"ADDRESSES: map[Binance:rXYZ]\n", s)
	assert.NotContains(t, s, "s3cr3t")
}
