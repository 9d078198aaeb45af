package toml

import "github.com/stellar/cexdemo/api"

// ExchangeAPIKeyToml is the toml representation of a single ExchangeAPIKey
type ExchangeAPIKeyToml struct {
	Key    string `valid:"-" toml:"KEY"`
	Secret string `valid:"-" toml:"SECRET"`
}

// ExchangeAPIKeysToml is the toml representation of ExchangeAPIKeys
type ExchangeAPIKeysToml []ExchangeAPIKeyToml

// ToExchangeAPIKeys converts object
func (t ExchangeAPIKeysToml) ToExchangeAPIKeys() []api.ExchangeAPIKey {
	apiKeys := []api.ExchangeAPIKey{}
	for _, apiKey := range t {
		apiKeys = append(apiKeys, api.ExchangeAPIKey{
			Key:    apiKey.Key,
			Secret: apiKey.Secret,
		})
	}
	return apiKeys
}

// Wipe overwrites every key and secret in place
func (t ExchangeAPIKeysToml) Wipe() {
	for i := range t {
		t[i] = ExchangeAPIKeyToml{}
	}
}
