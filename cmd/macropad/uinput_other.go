//go:build !linux

package main

import (
	"errors"
	"log/slog"

	"macropad/internal/core"
)

type uinputSink struct{}

func openUinput(path, name string, logger *slog.Logger) (*uinputSink, error) {
	return nil, errors.New("output.backend uinput requires linux (use output.backend: log)")
}

func (u *uinputSink) KeyDown(core.Key) error { return errors.New("uinput unavailable") }
func (u *uinputSink) KeyUp(core.Key) error   { return errors.New("uinput unavailable") }
func (u *uinputSink) Close() error           { return nil }
