package main

import (
	"fmt"
	"os"
)

const (
	appName    = "widgetbridge"
	appVersion = "dev"
	skipRunEnv = "SKIP_SERVER_RUN"
)

func main() {
	if os.Getenv(skipRunEnv) == "1" {
		return
	}
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
