package main

import (
	"os"
	"strconv"
)

func columnsEnv() int {
	if cols, ok := os.LookupEnv("COLUMNS"); ok {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// colWidth caps the configured column width to half the terminal.
func colWidth(configured, term int) int {
	if term > 0 && term/2 < configured {
		return term / 2
	}
	return configured
}
