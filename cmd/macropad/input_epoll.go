//go:build linux

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// readModeKeyEpoll watches one evdev device for the mode-select key and
// forwards its presses and releases to the scan loop. It runs until ctx is
// canceled or the device fails.
func readModeKeyEpoll(ctx context.Context, path string, code int, events chan<- Event, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input device %s: %w", path, err)
	}
	defer f.Close()

	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return fmt.Errorf("epoll_create1: %w", err)
	}
	defer unix.Close(epfd)

	fd := int(f.Fd())
	event := unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, fd, &event); err != nil {
		return fmt.Errorf("epoll_ctl_add fd=%d: %w", fd, err)
	}

	logger.Info("mode-select input device ready", "device", path, "code", code)

	const maxEvents = 4
	epollEvents := make([]unix.EpollEvent, maxEvents)
	buf := make([]byte, binary.Size(inputEvent{}))
	reader := bytes.NewReader(buf)
	timeoutMS := int(shutdownPollInterval.Milliseconds())

	for {
		if ctx.Err() != nil {
			return nil
		}

		// Wake periodically so cancellation is noticed.
		n, err := unix.EpollWait(epfd, epollEvents, timeoutMS)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return fmt.Errorf("epoll_wait: %w", err)
		}

		for i := 0; i < n; i++ {
			if epollEvents[i].Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
				return fmt.Errorf("device error/hangup: %s", path)
			}

			if _, err := f.Read(buf); err != nil {
				return fmt.Errorf("read from %s: %w", path, err)
			}

			reader.Reset(buf)
			var ev inputEvent
			if err := binary.Read(reader, binary.LittleEndian, &ev); err != nil {
				continue
			}

			out := modeSelectEventFor(ev, uint16(code))
			if out == nil {
				continue
			}
			select {
			case events <- out:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
