// Package devserver is a stand-in for the recognition backend. It answers
// calculate requests from scripted fixtures so the client can be developed
// and tested offline.
package devserver

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry is one scripted result.
type Entry struct {
	Expr   string `yaml:"expr" json:"expr"`
	Result string `yaml:"result" json:"result"`
	Assign bool   `yaml:"assign" json:"assign"`
}

// Fixture is one scripted reply.
type Fixture struct {
	Name    string        `yaml:"name"`
	Status  string        `yaml:"status"` // success or error
	Message string        `yaml:"message"`
	Data    []Entry       `yaml:"data"`
	Code    int           `yaml:"http_status"` // non-2xx simulates a transport failure
	Delay   time.Duration `yaml:"delay"`
}

// FixtureSet is the file format: replies are served in order and wrap
// around.
type FixtureSet struct {
	Responses []Fixture `yaml:"responses"`
}

// fillDefaults treats a missing status as success and a missing code as 200.
func (f *Fixture) fillDefaults() {
	if f.Status == "" {
		f.Status = "success"
	}
	if f.Code == 0 {
		f.Code = http.StatusOK
	}
}

// DefaultFixtures answers every request with a single sum.
func DefaultFixtures() FixtureSet {
	return FixtureSet{Responses: []Fixture{{
		Name:    "default",
		Status:  "success",
		Message: "Image processed",
		Data:    []Entry{{Expr: "2 + 2", Result: "4"}},
		Code:    http.StatusOK,
	}}}
}

// ParseFixtures decodes YAML fixtures and fills defaults.
func ParseFixtures(data []byte) (FixtureSet, error) {
	var set FixtureSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return FixtureSet{}, fmt.Errorf("parse fixtures: %w", err)
	}
	if len(set.Responses) == 0 {
		return FixtureSet{}, fmt.Errorf("fixtures: no responses defined")
	}
	for i := range set.Responses {
		f := &set.Responses[i]
		f.fillDefaults()
		if f.Status != "success" && f.Status != "error" {
			return FixtureSet{}, fmt.Errorf("fixture %d: unknown status %q", i, f.Status)
		}
		if f.Code < 100 || f.Code > 599 {
			return FixtureSet{}, fmt.Errorf("fixture %d: invalid http_status %d", i, f.Code)
		}
	}
	return set, nil
}

// LoadFixtures reads a YAML fixture file.
func LoadFixtures(path string) (FixtureSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FixtureSet{}, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	set, err := ParseFixtures(data)
	if err != nil {
		return FixtureSet{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}
