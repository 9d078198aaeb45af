package networking

import (
	"fmt"
	"reflect"

	"github.com/stellar/cexdemo/model"
)

const numberPrecision = 10

// PrefixFieldNotFound is what is returned in the error when we cannot find a field in the map
const PrefixFieldNotFound = "could not find field in map"

func checkKeyPresent(m map[string]interface{}, key string) (interface{}, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("%s: %s", PrefixFieldNotFound, key)
	}

	return v, nil
}

func makeParseError(field string, dataType string, methodAPI string, value interface{}) error {
	return fmt.Errorf("could not parse the field '%s' as a %s in the response from %s: value=%v, type=%s", field, dataType, methodAPI, value, reflect.TypeOf(value))
}

// ParseNumber helps to parse a model.Number value out of the map
func ParseNumber(m map[string]interface{}, key string, methodAPI string) (*model.Number, error) {
	v, e := checkKeyPresent(m, key)
	if e != nil {
		return nil, e
	}

	switch value := v.(type) {
	case string:
		n, e := model.NumberFromString(value, numberPrecision)
		if e != nil {
			return nil, fmt.Errorf("unable to convert the string field '%s' to a number in the response from %s: value=%v, error=%s", key, methodAPI, value, e)
		}
		return n, nil
	case float64:
		return model.NumberFromFloat(value, numberPrecision), nil
	default:
		return nil, makeParseError(key, "number", methodAPI, v)
	}
}
