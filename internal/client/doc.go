// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It starts the background workers (sync job, push connection), runs the
// terminal UI and stops everything again when the UI exits.
package client
