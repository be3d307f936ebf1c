// Package config provides centralized configuration management for the
// ACE Signal Correction Lab. Configuration is loaded from environment
// variables (prefix ACELAB_*) layered over an optional YAML file, with
// defaults declared in struct tags and validated at load time.
//
// Environment variables follow the pattern ACELAB_<SECTION>_<FIELD>:
//
//	ACELAB_SERVER_PORT=8080
//	ACELAB_LOGGING_LEVEL=debug
//	ACELAB_PATHS_OUTPUT_DIR=/var/lib/acelab/output
//	ACELAB_PIPELINE_ERROR_CAP_PCT=5.0
//
// The package also owns the Paths type, the single source of truth for
// all file system locations, and the fixed policy constants of the
// correction pipeline (error cap percentage, estimate rounding digits,
// snapshot naming).
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := config.NewPaths(cfg.Paths)
package config
