package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	testCases := []struct {
		input string
		want  []string
	}{
		{input: "ticker,orders,withdraw", want: []string{"ticker", "orders", "withdraw"}},
		{input: " ticker , balance ,", want: []string{"ticker", "balance"}},
		{input: "", want: []string{}},
	}

	for _, kase := range testCases {
		t.Run(kase.input, func(t *testing.T) {
			assert.Equal(t, kase.want, SplitList(kase.input))
		})
	}
}

type stringerStub struct{}

func (s *stringerStub) String() string { return "stub" }

func TestCheckedString(t *testing.T) {
	var nilStub *stringerStub
	assert.Equal(t, "<nil>", CheckedString(nil))
	assert.Equal(t, "<nil>", CheckedString(nilStub))
	assert.Equal(t, "stub", CheckedString(&stringerStub{}))
	assert.Equal(t, "5", CheckedString(5))
}
