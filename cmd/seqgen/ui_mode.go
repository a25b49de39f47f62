package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// uiMode is the --ui flag of generate: whether template progress is drawn
// with the interactive view.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

var uiModes = map[string]uiMode{"": uiAuto, "auto": uiAuto, "on": uiOn, "off": uiOff}

func readUIMode(value string) (uiMode, error) {
	if m, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]; ok {
		return m, nil
	}
	return uiAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// useProgressUI decides whether generate runs under the progress view. The
// view only pairs with the pretty report; auto also wants stdout to be a
// terminal.
func useProgressUI(cmd *cobra.Command, format string) (bool, error) {
	flag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return false, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(flag)
	if err != nil {
		return false, err
	}
	switch {
	case mode == uiOff:
		return false, nil
	case format != "pretty" && format != "":
		if mode == uiOn {
			return false, fmt.Errorf("--ui=on requires --format=pretty, got %q", format)
		}
		return false, nil
	case mode == uiOn:
		return true, nil
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminal(f), nil
}
