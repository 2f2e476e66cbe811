// Package config manages user-level settings stored at ~/.ai-init/config.yaml
// and AIINIT_* environment variables: whether to skip alias linking, verbose
// tracing, a template directory override, and copy concurrency.
package config
