package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// maxRounds bounds the number of rounds; each basis holds a square matrix twice the state size across.
const maxRounds = 64

// Config for trailsearch
type Config struct {
	Rounds     int    `json:"rounds"`
	Seed       uint64 `json:"seed"`
	Count      int    `json:"count"`
	MaxWeight  int    `json:"maxweight"`
	Output     string `json:"output"`
	Chart      string `json:"chart"`
	Verify     bool   `json:"verify"`
	StatsEvery int    `json:"statsevery"`
	Verbose    bool   `json:"verbose"`
}

func (c *Config) validate() error {
	switch {
	case c.Rounds < 2:
		return errors.Errorf("rounds must be at least 2, have %d", c.Rounds)
	case c.Rounds > maxRounds:
		return errors.Errorf("rounds must be at most %d, have %d", maxRounds, c.Rounds)
	case c.Count < 0:
		return errors.Errorf("count must not be negative, have %d", c.Count)
	case c.MaxWeight < 0:
		return errors.Errorf("maxweight must not be negative, have %d", c.MaxWeight)
	case c.StatsEvery < 0:
		return errors.Errorf("statsevery must not be negative, have %d", c.StatsEvery)
	}
	return nil
}

func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path) // For read access.
	if err != nil {
		return errors.Wrap(err, "open config")
	}
	defer file.Close()

	return errors.Wrap(json.NewDecoder(file).Decode(config), "decode config")
}
