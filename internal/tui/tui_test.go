package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/models"
)

func TestNew(t *testing.T) {
	_, err := New(nil, models.AppBuildInfo{}, logger.Nop())
	assert.Error(t, err)

	ui, err := New(&fakeController{}, models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)
	assert.Len(t, ui.options, 1)
	assert.Equal(t, "N/A", ui.buildInfo.BuildVersion())
}
