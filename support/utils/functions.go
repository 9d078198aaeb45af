package utils

import (
	"fmt"
	"log"
	"reflect"
	"strings"
)

// CheckedString returns "<nil>" if the object is nil, otherwise calls the String() function on the object
func CheckedString(v interface{}) string {
	if v == nil {
		return "<nil>"
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("%v", v)
}

// StringSet converts a string slice to a map of string to bool values to represent a Set
func StringSet(list []string) map[string]bool {
	m := map[string]bool{}
	for _, s := range list {
		m[s] = true
	}
	return m
}

// SplitList splits a comma-separated list, trimming whitespace and dropping empty entries
func SplitList(s string) []string {
	out := []string{}
	for _, elem := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(elem)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// PrintErrorHintf shows a helpful hint for the user when there is an error (likely recoverable)
func PrintErrorHintf(message string, args ...interface{}) {
	log.Printf("\n")
	log.Printf("**************************************** HINT ****************************************\n")
	log.Printf("\n")
	log.Printf(message, args...)
	log.Printf("\n")
	log.Printf("*************************************** /HINT ****************************************\n")
	log.Printf("\n")
}
