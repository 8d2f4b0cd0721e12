package main

import (
	"fmt"

	"github.com/alnah/go-rstify/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML.
func runConfig(args []string, env *Environment) error {
	flags, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(flags.config)
	if err != nil {
		return err
	}

	data, err := yamlutil.Encode(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	_, err = env.Stdout.Write(data)
	return err
}
