// cmd/benchplot/main.go
package main

import (
	"log"
	"os"

	cmd "github.com/mwiater/benchplot/internal/cli"
	"github.com/mwiater/benchplot/internal/logging"
)

var (
	executeCmd   = cmd.Execute
	closeLogging = logging.Close
	exit         = os.Exit
)

// main hands over to the cobra root command, which merges flags, env and the
// config file and starts logging. The log file is closed before exiting.
func main() {
	err := executeCmd()
	if cerr := closeLogging(); cerr != nil {
		log.Printf("logging: %v", cerr)
	}
	if err != nil {
		exit(1)
	}
}
