package main

import (
	"github.com/haytac/emotions/internal/cli"
	"github.com/haytac/emotions/internal/logging"
)

func main() {
	// Basic logger until the root command loads the configured one.
	logging.Setup(logging.Config{Level: "info", Console: true, TimeFormat: "15:04:05"})

	cli.Execute()
}
