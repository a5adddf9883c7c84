package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode is the auto|on|off value shared by --color and --ui.
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

var switchNames = [...]string{switchAuto: "auto", switchOn: "on", switchOff: "off"}

func (m switchMode) String() string { return switchNames[m] }

// parseSwitch accepts any case and surrounding blanks; "" means auto.
func parseSwitch(flag, value string) (switchMode, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return switchAuto, nil
	}
	for m, name := range switchNames {
		if v == name {
			return switchMode(m), nil //nolint:gosec // three values
		}
	}
	return switchAuto, fmt.Errorf("invalid %s value %q (expected auto|on|off)", flag, value)
}

// on resolves auto against whether f is a terminal.
func (m switchMode) on(f *os.File) bool {
	if m == switchAuto {
		return isTerminal(f)
	}
	return m == switchOn
}
