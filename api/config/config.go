package config

import "time"

const (
	// DefaultBaudRate is the serial baud rate the module enumerates at.
	DefaultBaudRate = 115200

	// DefaultResponseTimeout is the response window for ordinary commands.
	DefaultResponseTimeout = 2 * time.Second

	// DefaultCommandDelay is the mandatory pause between commands
	// required by the module firmware.
	DefaultCommandDelay = 150 * time.Millisecond

	// DefaultPairTimeout allows for user confirmation on the remote device.
	DefaultPairTimeout = 30 * time.Second

	// DefaultProfileOpenTimeout is the response window for OPEN commands.
	DefaultProfileOpenTimeout = 15 * time.Second

	// DefaultScanGrace extends an inquiry window to catch late hits.
	DefaultScanGrace = 3 * time.Second

	// DefaultPendingGrace is the extra wait for a late OPEN_OK after a
	// PENDING acknowledgment.
	DefaultPendingGrace = 2 * time.Second

	// DefaultSettleDelay lets the module settle after the port opens.
	DefaultSettleDelay = 500 * time.Millisecond
)

// Configuration describes a general session configuration.
type Configuration struct {
	// PortName holds the serial port path (for example "/dev/ttyACM0" or
	// "COM3"). When empty, the port is auto-detected by USB VID:PID.
	PortName string

	// BaudRate holds the serial baud rate.
	BaudRate int

	ResponseTimeout    time.Duration
	CommandDelay       time.Duration
	PairTimeout        time.Duration
	ProfileOpenTimeout time.Duration
	ScanGrace          time.Duration
	PendingGrace       time.Duration
	SettleDelay        time.Duration

	// OptimisticAck records pairings and profile opens as successful when
	// the module acknowledges ambiguously (neither a success nor an error
	// marker). This matches the module firmware's observed behavior of
	// reporting completion out-of-band, at the cost of possible false
	// positives. Disable to treat ambiguous acknowledgments as failures.
	OptimisticAck bool
}

// New returns a new configuration with default timing values and the
// optimistic-acknowledgment policy enabled.
func New() Configuration {
	return Configuration{
		BaudRate:           DefaultBaudRate,
		ResponseTimeout:    DefaultResponseTimeout,
		CommandDelay:       DefaultCommandDelay,
		PairTimeout:        DefaultPairTimeout,
		ProfileOpenTimeout: DefaultProfileOpenTimeout,
		ScanGrace:          DefaultScanGrace,
		PendingGrace:       DefaultPendingGrace,
		SettleDelay:        DefaultSettleDelay,
		OptimisticAck:      true,
	}
}
