// Package errorkinds defines sentinel error values shared across the module.
package errorkinds

import "errors"

var (
	// ErrNotConnected is returned when an operation requires an open
	// serial connection to the module and none exists.
	ErrNotConnected = errors.New("session: not connected to a device")

	// ErrDeviceNotFound is returned when no ATS-BT device could be
	// auto-detected on any serial port.
	ErrDeviceNotFound = errors.New("serialport: no ATS-BT device found")

	// ErrInvalidAddress is returned when a Bluetooth device address does
	// not match the 12-hex-digit form the module reports.
	ErrInvalidAddress = errors.New("bluetooth: invalid device address")

	// ErrMethodCall is returned when a method is invoked with missing or
	// inconsistent parameters.
	ErrMethodCall = errors.New("session: cannot invoke method")
)
