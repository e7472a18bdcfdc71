package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"ief/hal"
)

// guard runs fn and turns a panic into an error after logging the value and
// its stack line by line.
func guard(log hal.Logger, name string, fn func() error) (err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		log.WriteLineString(fmt.Sprintf("app: panic in %s: %v", name, v))
		for _, line := range strings.Split(string(debug.Stack()), "\n") {
			if line == "" {
				continue
			}
			log.WriteLineString(line)
		}
		err = fmt.Errorf("app: %s panicked: %v", name, v)
	}()
	return fn()
}
