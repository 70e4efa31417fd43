//go:build linux

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sys/unix"

	"macropad/internal/core"
)

// uinput ioctls (from <linux/uinput.h>)
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565

	busUSB = 0x03
	absCnt = 64
)

// uinputUserDev mirrors struct uinput_user_dev (the legacy setup interface,
// supported by every kernel that has uinput).
type uinputUserDev struct {
	Name         [80]byte
	Bustype      uint16
	Vendor       uint16
	Product      uint16
	Version      uint16
	FFEffectsMax uint32
	Absmax       [absCnt]int32
	Absmin       [absCnt]int32
	Absfuzz      [absCnt]int32
	Absflat      [absCnt]int32
}

// uinputSink is a core.KeySink backed by a virtual keyboard.
type uinputSink struct {
	fd     int
	logger *slog.Logger
}

// openUinput creates a virtual keyboard that can emit every key in
// linuxKeyCodes.
func openUinput(path, name string, logger *slog.Logger) (*uinputSink, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	fail := func(step string, err error) (*uinputSink, error) {
		unix.Close(fd)
		return nil, fmt.Errorf("uinput %s: %w", step, err)
	}

	if err := unix.IoctlSetInt(fd, uiSetEvBit, EV_KEY); err != nil {
		return fail("set EV_KEY", err)
	}
	if err := unix.IoctlSetInt(fd, uiSetEvBit, EV_SYN); err != nil {
		return fail("set EV_SYN", err)
	}

	codes := make([]int, 0, len(linuxKeyCodes))
	for _, c := range linuxKeyCodes {
		codes = append(codes, int(c))
	}
	sort.Ints(codes)
	for _, c := range codes {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, c); err != nil {
			return fail(fmt.Sprintf("set key %d", c), err)
		}
	}

	dev := uinputUserDev{
		Bustype: busUSB,
		Vendor:  0x1209,
		Product: 0x0001,
		Version: 1,
	}
	copy(dev.Name[:len(dev.Name)-1], name)

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &dev); err != nil {
		return fail("encode device", err)
	}
	if _, err := unix.Write(fd, buf.Bytes()); err != nil {
		return fail("write device", err)
	}
	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		return fail("create device", err)
	}

	logger.Info("uinput keyboard created", "path", path, "name", name, "keys", len(codes))
	return &uinputSink{fd: fd, logger: logger}, nil
}

// KeyDown implements core.KeySink.
func (u *uinputSink) KeyDown(k core.Key) error { return u.emitKey(k, evValuePress) }

// KeyUp implements core.KeySink.
func (u *uinputSink) KeyUp(k core.Key) error { return u.emitKey(k, evValueRelease) }

func (u *uinputSink) emitKey(k core.Key, value int32) error {
	code, ok := linuxKeyCodes[k]
	if !ok {
		return fmt.Errorf("no linux key code for %s", k)
	}

	var buf bytes.Buffer
	for _, ev := range []inputEvent{
		{Type: EV_KEY, Code: code, Value: value},
		{Type: EV_SYN, Code: SYN_REPORT},
	} {
		if err := binary.Write(&buf, binary.LittleEndian, &ev); err != nil {
			return fmt.Errorf("encode input event: %w", err)
		}
	}
	if _, err := unix.Write(u.fd, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", k, err)
	}
	return nil
}

// Close destroys the virtual keyboard.
func (u *uinputSink) Close() error {
	if err := unix.IoctlSetInt(u.fd, uiDevDestroy, 0); err != nil {
		u.logger.Warn("uinput destroy failed", "error", err)
	}
	return unix.Close(u.fd)
}
