//go:build !linux

package main

import (
	"context"
	"errors"
	"log/slog"
)

func readModeKeyEpoll(ctx context.Context, path string, code int, events chan<- Event, logger *slog.Logger) error {
	return errors.New("mode_select.input_device requires linux")
}
