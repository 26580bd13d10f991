package splitgraph

import (
	"log"
	"os"
)

// logger is the package-level verbose-progress sink.
var logger = log.New(os.Stderr, "splitgraph: ", 0)

// SetLogger overrides the destination for verbose progress messages.
func SetLogger(l *log.Logger) {
	logger = l
}
