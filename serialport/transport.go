// Package serialport provides the serial transport to an ATS-BT module and
// USB port discovery.
package serialport

import (
	"context"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"go.bug.st/serial"
)

// readPollTimeout bounds a single transport read so that polling callers
// regain control quickly when no data is buffered.
const readPollTimeout = 10 * time.Millisecond

// Transport is a byte-oriented, half-duplex channel to the module.
//
// A Transport is owned exclusively by one session; there is no concurrent
// access by construction.
type Transport interface {
	// WriteString writes the given bytes to the channel.
	WriteString(s string) error

	// ReadAvailable returns whatever bytes are buffered on the channel,
	// waiting at most a short poll interval. It returns an empty slice
	// when nothing arrived.
	ReadAvailable() ([]byte, error)

	// ResetInput discards any buffered, unread input.
	ResetInput() error

	// Close closes the channel.
	Close() error
}

// SerialTransport is a Transport over a USB-CDC serial port.
type SerialTransport struct {
	name string
	port serial.Port
	buf  []byte
}

// Open opens the named serial port at the given baud rate (8N1) and clears
// both I/O buffers.
func Open(name string, baudRate int) (*SerialTransport, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}

	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fault.Wrap(err,
			fctx.With(context.Background(), "port", name),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot open serial port"),
		)
	}

	if err := port.SetReadTimeout(readPollTimeout); err != nil {
		port.Close()
		return nil, fault.Wrap(err,
			fctx.With(context.Background(), "port", name),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot configure serial read timeout"),
		)
	}

	port.ResetInputBuffer()
	port.ResetOutputBuffer()

	return &SerialTransport{
		name: name,
		port: port,
		buf:  make([]byte, 256),
	}, nil
}

// Name returns the port path the transport was opened on.
func (t *SerialTransport) Name() string {
	return t.name
}

// WriteString writes the given bytes to the port and drains the output
// buffer.
func (t *SerialTransport) WriteString(s string) error {
	if _, err := t.port.Write([]byte(s)); err != nil {
		return fault.Wrap(err,
			fctx.With(context.Background(), "port", t.name),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot write to serial port"),
		)
	}

	return t.port.Drain()
}

// ReadAvailable reads whatever is buffered on the port. A read timeout
// yields an empty slice, not an error.
func (t *SerialTransport) ReadAvailable() ([]byte, error) {
	n, err := t.port.Read(t.buf)
	if err != nil {
		return nil, err
	}

	return t.buf[:n], nil
}

// ResetInput discards buffered, unread input.
func (t *SerialTransport) ResetInput() error {
	return t.port.ResetInputBuffer()
}

// Close closes the port.
func (t *SerialTransport) Close() error {
	return t.port.Close()
}
