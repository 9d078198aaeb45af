package utils

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/stellar/cexdemo/support/logger"
)

// CheckConfigError checks configs for errors, crashes app if there's an error
func CheckConfigError(l logger.Logger, e error, filename string) {
	if e != nil {
		l.Error(e.Error())
		logger.Fatal(l, fmt.Errorf("could not parse the config file '%s'. Check that the correct type of file was passed in", filename))
	}
}

// LogConfig logs out the config file
func LogConfig(l logger.Logger, cfg fmt.Stringer) {
	l.Info("configs:")
	for _, line := range strings.Split(strings.TrimSuffix(cfg.String(), "\n"), "\n") {
		l.Infof("     %s", line)
	}
}

// StructString is a helper method that serializes configs; the transform keys are always flattened,
// i.e specify the key meant to be on an inner object at a top level key on the transform map
func StructString(s interface{}, indentLevel uint8, transforms map[string]func(interface{}) interface{}) string {
	var buf bytes.Buffer
	t := reflect.TypeOf(s)
	v := reflect.ValueOf(s)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldDisplayName := field.Tag.Get("toml")
		if fieldDisplayName == "" {
			fieldDisplayName = field.Name
		}

		currentField := v.Field(i)
		if !currentField.CanInterface() {
			continue
		}

		transformFn := passthrough
		if fn, ok := transforms[fieldDisplayName]; ok {
			transformFn = fn
		}

		value := currentField.Interface()
		kind := currentField.Kind()
		if kind == reflect.Ptr && !currentField.IsNil() {
			derefField := reflect.Indirect(currentField)
			value = derefField.Interface()
			kind = derefField.Kind()
		}

		for indentIdx := 0; indentIdx < int(indentLevel); indentIdx++ {
			buf.WriteString("    ")
		}
		if kind == reflect.Struct {
			buf.WriteString(fmt.Sprintf("%s:\n%s", fieldDisplayName, StructString(value, indentLevel+1, transforms)))
		} else {
			buf.WriteString(fmt.Sprintf("%s: %+v\n", fieldDisplayName, transformFn(value)))
		}
	}
	return buf.String()
}

func passthrough(i interface{}) interface{} {
	return i
}

// HideKeys keeps the number of entries of a slice visible while hiding every entry
func HideKeys(i interface{}) interface{} {
	v := reflect.ValueOf(i)
	if v.Kind() != reflect.Slice {
		return ""
	}
	return fmt.Sprintf("[%d hidden]", v.Len())
}
