// Package config provides configuration settings for logging and persistence,
// validated with go-playground/validator before use.
package config
