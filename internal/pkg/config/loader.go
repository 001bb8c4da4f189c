// Package config provides shared helpers for loading configuration from
// environment variables with validation and fallback semantics.
//
// Every loader follows the same contract: if the variable is unset the
// default applies silently; if the variable is set but invalid the default
// applies with a warning. Loaders never return errors, so a misconfigured
// environment degrades to known-good defaults instead of failing startup.
// Callers decide how to surface the warnings (logs, metrics, or both).
package config

import (
	"fmt"
	"os"
	"time"
)

// ConfigLoadResult carries the outcome of a single environment load:
// the effective value, any fallback warnings, and whether a fallback
// was applied.
type ConfigLoadResult struct {
	// Value holds the loaded configuration value. Callers assert it to
	// the concrete type matching the loader used (string, int, bool,
	// time.Duration).
	Value interface{}

	// Warnings contains human-readable messages for each fallback that
	// occurred during loading. Empty when the value loaded cleanly.
	Warnings []string

	// FallbackApplied is true when Value is the default rather than the
	// configured value.
	FallbackApplied bool
}

// LoadEnvString loads a string from an environment variable, validating it
// with the supplied validator and falling back to defaultValue on failure.
//
//  1. Unset or empty: default, no warning.
//  2. Set and valid: configured value.
//  3. Set and invalid: default, with warning.
//
// A nil validator accepts any non-empty value.
func LoadEnvString(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)

	// 未設定は警告なしでデフォルトを使う
	if value == "" {
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        nil,
			FallbackApplied: false,
		}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			warning := fmt.Sprintf(
				"Invalid %s='%s': %v, falling back to default '%s'",
				envKey,
				value,
				err,
				defaultValue,
			)
			return ConfigLoadResult{
				Value:           defaultValue,
				Warnings:        []string{warning},
				FallbackApplied: true,
			}
		}
	}

	return ConfigLoadResult{
		Value:           value,
		Warnings:        nil,
		FallbackApplied: false,
	}
}

// LoadEnvWithFallback loads a string that must satisfy the validator, but
// distinguishes a configured fallback from the hard default: when the
// primary value is invalid the fallbackValue is tried first, and only if
// that is also invalid does the defaultValue apply. Both fallback steps
// generate warnings.
//
// Use this when deployments ship a secondary value worth preferring over
// the compiled-in default, such as a backup schedule or mirror URL.
func LoadEnvWithFallback(envKey, defaultValue, fallbackValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)

	if value == "" {
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        nil,
			FallbackApplied: false,
		}
	}

	if validator == nil || validator(value) == nil {
		return ConfigLoadResult{
			Value:           value,
			Warnings:        nil,
			FallbackApplied: false,
		}
	}

	err := validator(value)

	// 一次値が不正ならフォールバック値を先に試す
	if fallbackValue != "" && validator(fallbackValue) == nil {
		warning := fmt.Sprintf(
			"Invalid %s='%s': %v, falling back to '%s'",
			envKey,
			value,
			err,
			fallbackValue,
		)
		return ConfigLoadResult{
			Value:           fallbackValue,
			Warnings:        []string{warning},
			FallbackApplied: true,
		}
	}

	warning := fmt.Sprintf(
		"Invalid %s='%s': %v, falling back to default '%s'",
		envKey,
		value,
		err,
		defaultValue,
	)
	return ConfigLoadResult{
		Value:           defaultValue,
		Warnings:        []string{warning},
		FallbackApplied: true,
	}
}

// LoadEnvDuration loads a time.Duration from an environment variable using
// time.ParseDuration ("30s", "5m", "1h30m"). Parse failures and validator
// rejections both fall back to defaultValue with a warning.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)

	if valueStr == "" {
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        nil,
			FallbackApplied: false,
		}
	}

	parsed, err := time.ParseDuration(valueStr)
	if err != nil {
		warning := fmt.Sprintf(
			"Invalid %s='%s': invalid duration format, falling back to default '%s'",
			envKey,
			valueStr,
			defaultValue,
		)
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        []string{warning},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			warning := fmt.Sprintf(
				"Invalid %s='%s': %v, falling back to default '%s'",
				envKey,
				valueStr,
				err,
				defaultValue,
			)
			return ConfigLoadResult{
				Value:           defaultValue,
				Warnings:        []string{warning},
				FallbackApplied: true,
			}
		}
	}

	return ConfigLoadResult{
		Value:           parsed,
		Warnings:        nil,
		FallbackApplied: false,
	}
}

// LoadEnvInt loads an int from an environment variable. Parse failures and
// validator rejections both fall back to defaultValue with a warning.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)

	if valueStr == "" {
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        nil,
			FallbackApplied: false,
		}
	}

	var parsed int
	_, err := fmt.Sscanf(valueStr, "%d", &parsed)
	if err != nil {
		warning := fmt.Sprintf(
			"Invalid %s='%s': invalid integer format, falling back to default '%d'",
			envKey,
			valueStr,
			defaultValue,
		)
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        []string{warning},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			warning := fmt.Sprintf(
				"Invalid %s='%s': %v, falling back to default '%d'",
				envKey,
				valueStr,
				err,
				defaultValue,
			)
			return ConfigLoadResult{
				Value:           defaultValue,
				Warnings:        []string{warning},
				FallbackApplied: true,
			}
		}
	}

	return ConfigLoadResult{
		Value:           parsed,
		Warnings:        nil,
		FallbackApplied: false,
	}
}

// LoadEnvBool loads a bool from an environment variable. Accepted spellings
// follow strconv.ParseBool: "1", "t", "true" and "0", "f", "false" in any
// of the usual casings. Anything else falls back to defaultValue with a
// warning.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	valueStr := os.Getenv(envKey)

	if valueStr == "" {
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        nil,
			FallbackApplied: false,
		}
	}

	var parsed bool
	switch valueStr {
	case "1", "t", "T", "true", "TRUE", "True":
		parsed = true
	case "0", "f", "F", "false", "FALSE", "False":
		parsed = false
	default:
		warning := fmt.Sprintf(
			"Invalid %s='%s': invalid boolean format, expected 'true' or 'false', falling back to default '%t'",
			envKey,
			valueStr,
			defaultValue,
		)
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        []string{warning},
			FallbackApplied: true,
		}
	}

	return ConfigLoadResult{
		Value:           parsed,
		Warnings:        nil,
		FallbackApplied: false,
	}
}
