package main

import (
	"fmt"
	"os"

	"github.com/platformeng/patternctl/internal/catalog"
	"github.com/platformeng/patternctl/internal/logger"
)

func main() {
	log, err := logger.New(logger.Options{Level: "info", HumanReadable: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cat, err := catalog.Load()
	if err != nil {
		// A malformed catalog must stop the process rather than serve
		// decisions against partial data.
		log.Fatal(err, "failed to load pattern catalog")
	}

	app := newAppContext(cat, log)

	if err := newRootCmd(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
