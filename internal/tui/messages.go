package tui

import "github.com/xlevchenko/TwinTalk/internal/service"

// snapshotMsg carries a state published by the controller.
type snapshotMsg service.Snapshot

// subscriptionClosedMsg is sent once the snapshot channel is closed.
type subscriptionClosedMsg struct{}

type syncDoneMsg struct {
	err error
}

type sendDoneMsg struct {
	err error
}

type clearStatusMsg struct{}
