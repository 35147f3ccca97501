//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// stage runs one inventory subcommand through the built binary.
func stage(args ...string) error {
	bin := filepath.Join(binDir, binName)
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", binName, args[0], err)
	}
	return nil
}

// Query fetches new articles from EuropePMC using data/query.txt and the
// last recorded query date.
func Query() error {
	mg.Deps(Build)
	return stage("query", "data/query.txt", "--date", "out/last_query_date.txt")
}

// Classify labels the queried articles with the prediction server.
func Classify() error {
	mg.Deps(Build)
	return stage("classify", "out/new_query_results.csv")
}

// CheckURLs verifies extracted resource URLs and records Wayback snapshots.
func CheckURLs() error {
	mg.Deps(Build)
	return stage("check-urls", "data/urls.csv")
}

// Ingest loads the pipeline output into the local inventory database.
func Ingest() error {
	mg.Deps(Build)
	return stage("store", "ingest", "out/new_query_results.csv")
}
