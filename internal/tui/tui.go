package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xlevchenko/TwinTalk/internal/logger"
	"github.com/xlevchenko/TwinTalk/internal/service"
	"github.com/xlevchenko/TwinTalk/models"
)

// TUI is the terminal front end of the session controller.
type TUI struct {
	controller service.SessionController
	buildInfo  models.AppBuildInfo
	options    []tea.ProgramOption

	logger *logger.Logger
}

func New(controller service.SessionController, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if controller == nil {
		return nil, errors.New("tui: session controller is required")
	}
	return &TUI{
		controller: controller,
		buildInfo:  buildInfo,
		options:    []tea.ProgramOption{tea.WithAltScreen()},
		logger:     logger,
	}, nil
}

// Run blocks until the user quits or ctx is done. The first sync starts as
// soon as the program is up.
func (t *TUI) Run(ctx context.Context) error {
	snapshots, unsubscribe := t.controller.Subscribe()
	defer unsubscribe()

	model := newAppModel(ctx, t.controller, snapshots, t.buildInfo)
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.options...)

	t.logger.Info().Str("func", "TUI.Run").Msg("starting terminal UI")
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("run terminal UI: %w", err)
	}

	return nil
}
