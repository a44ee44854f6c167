package config

import "errors"

var ErrConfigParsingFail = errors.New("failed to parse config file")

// ErrConfigFileNotFound is returned only by LoadFromFile, which treats an
// explicitly named config file as mandatory. Load's repo-root discovery is
// tolerant of a missing config/pipeline.json; an operator-supplied path is
// not.
var ErrConfigFileNotFound = errors.New("config file does not exist")
