// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// RunFile is the on-disk record of one query run: the template, the date
// window it was expanded with, and result statistics. Reruns can be audited
// without re-querying the API.
type RunFile struct {
	Query   string     `yaml:"query"`
	Window  DateWindow `yaml:"window"`
	Summary RunSummary `yaml:"summary"`
}

// DateWindow stores the substituted date range.
type DateWindow struct {
	LastDate string `yaml:"last_date"`
	Today    string `yaml:"today"`
}

// RunSummary stores result statistics and a timestamp.
type RunSummary struct {
	Returned  int       `yaml:"returned"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteRunFile saves the query run record to a YAML file.
func WriteRunFile(path, queryText, lastDate, today string, returned int) error {
	rf := RunFile{
		Query:  queryText,
		Window: DateWindow{LastDate: lastDate, Today: today},
		Summary: RunSummary{
			Returned:  returned,
			Timestamp: time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(rf)
	if err != nil {
		return fmt.Errorf("marshaling query run record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing query run record: %w", err)
	}
	return nil
}

// ReadRunFile loads a previously saved query run record.
func ReadRunFile(path string) (RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunFile{}, fmt.Errorf("reading query run record: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return RunFile{}, fmt.Errorf("parsing query run record %s: %w", path, err)
	}
	return rf, nil
}
