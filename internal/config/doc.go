// Package config provides configuration loading, merging, and validation
// facilities for the greeter and the development session daemon.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (comments and trailing commas allowed)
//
// The main entry points are [GetGreeterConfig] for the greeter and
// [GetFakeGreetConfig] for the fake daemon.
package config
