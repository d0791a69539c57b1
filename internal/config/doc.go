// Package config provides configuration loading, merging, and validation
// for the TwinTalk client and its mock server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON or YAML config file
//
// The main entry points are [GetClientConfig] for the interactive client and
// [GetServerConfig] for the development mock server.
package config
