// Package utils provides small helpers shared by the TwinTalk client and its
// mock server: the resty HTTP client wrapper, JSON response writing and
// identifier generation.
package utils
