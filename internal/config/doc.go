// Package config provides configuration structures and utilities for wordscope.
// It defines the server, fetch, analysis and cache options and loads them
// from a YAML file and WORDSCOPE_* environment variables.
package config
