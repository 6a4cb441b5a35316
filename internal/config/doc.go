// Package config provides configuration loading, merging, and validation
// facilities for the admin panel.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables, including an optional dotenv file, with
//     defaults from envDefault tags
//  2. Command-line flags
//  3. JSON or YAML config file
//
// The entry points are [GetStructuredConfig] for the server binary and
// [LoadConfig] for callers that bring their own argument list.
package config
