// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"

	"github.com/xlevchenko/TwinTalk/internal/adapter"
	"github.com/xlevchenko/TwinTalk/internal/service"
)

// humanizeError turns controller errors into a line fit for the banner.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch adapter.KindOf(err) {
	case adapter.KindNetworkUnavailable:
		return "No network connection or the server is unavailable"
	case adapter.KindTimeout:
		return "The server did not answer in time"
	case adapter.KindServerError:
		return fmt.Sprintf("The server answered with an error (%d)", adapter.StatusCode(err))
	case adapter.KindEmptyBody, adapter.KindMalformedResponse, adapter.KindDecodingFailed:
		return "The server sent a response that could not be read"
	case adapter.KindInvalidEndpoint:
		return "The server address is not configured correctly"
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return "This conversation no longer exists"
	case errors.Is(err, service.ErrEmptySessionTitle):
		return "A title is required"
	}

	return err.Error()
}
