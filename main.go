package main

import (
	"fmt"
	"os"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/cli"
)

// main - is the entry point of the application. Without arguments it runs the servers.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := cli.RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
