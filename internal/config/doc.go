// Package config loads and validates the YAML configuration of rstify.
//
// A config file may set any subset of fields:
//
//	input:
//	  defaultDir: ./peps
//	  extensions: [".txt"]
//	output:
//	  defaultDir: ./build
//	wrap:
//	  width: 72
//	highlight:
//	  style: github
//
// Unknown keys are rejected.
package config
