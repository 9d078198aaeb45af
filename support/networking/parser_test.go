package networking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	testCases := []struct {
		name    string
		m       map[string]interface{}
		want    string
		wantErr string
	}{
		{
			name: "string",
			m:    map[string]interface{}{"vol": "83.33333333"},
			want: "83.3333333300",
		}, {
			name: "float",
			m:    map[string]interface{}{"vol": 0.6},
			want: "0.6000000000",
		}, {
			name:    "missing",
			m:       map[string]interface{}{},
			wantErr: PrefixFieldNotFound,
		}, {
			name:    "bad string",
			m:       map[string]interface{}{"vol": "abc"},
			wantErr: "unable to convert the string field 'vol'",
		}, {
			name:    "bad type",
			m:       map[string]interface{}{"vol": true},
			wantErr: "could not parse the field 'vol' as a number",
		},
	}

	for _, kase := range testCases {
		t.Run(kase.name, func(t *testing.T) {
			n, e := ParseNumber(kase.m, "vol", "OpenOrders")
			if kase.wantErr != "" {
				if assert.Error(t, e) {
					assert.True(t, strings.Contains(e.Error(), kase.wantErr), e.Error())
				}
				return
			}
			if !assert.NoError(t, e) {
				return
			}
			assert.Equal(t, kase.want, n.AsString())
		})
	}
}
