package bluetooth

import "time"

// Session describes a control session with an ATS-BT module attached over a
// serial link.
//
// A session owns its transport exclusively and serializes commands: at most
// one command is in flight at a time, and every operation blocks the caller
// for up to its configured timeout.
type Session interface {
	// Connect opens the serial transport to the module, auto-detecting
	// the port when none is configured.
	Connect() error

	// Disconnect closes any tracked profile links (best effort) and the
	// transport. Calling it on a disconnected session is a no-op.
	Disconnect() error

	// Connected reports whether the transport is open.
	Connected() bool

	// Command sends a raw command line and returns the response text
	// collected until a terminal marker or the timeout. A zero timeout
	// selects the configured default. A timeout yields the partial
	// response, not an error.
	Command(text string, timeout time.Duration) (string, error)

	// Info returns the aggregate device information.
	Info() (DeviceInfo, error)

	// LocalAddress returns the module's own Bluetooth MAC address,
	// cached after the first successful query.
	LocalAddress() (string, error)

	// Scan runs a device inquiry for the given duration and returns the
	// hits in the order first observed. Repeated hits are not
	// deduplicated.
	Scan(duration time.Duration) ([]DiscoveredDevice, error)

	// Pair attempts to pair with the addressed peer.
	Pair(address Address) (PairResult, error)

	// OpenProfile opens an A2DP or AVRCP channel to the addressed peer.
	// A zero timeout selects the configured default.
	OpenProfile(address Address, profile Profile, timeout time.Duration) (OpenResult, error)

	// Link returns the tracked link for a profile, if one is open.
	Link(profile Profile) (ProfileLink, bool)

	// CloseLinks closes every tracked profile link independently,
	// clearing the bookkeeping regardless of the close outcome.
	CloseLinks()

	// MediaPlayer returns a function call interface to invoke media
	// control related functions on the connected peer.
	MediaPlayer() MediaPlayer
}

// MediaPlayer describes media control operations addressed to the AVRCP
// channel of a connected peer. Each call returns the raw device response.
type MediaPlayer interface {
	Play() (string, error)
	Pause() (string, error)
	Stop() (string, error)
	Next() (string, error)
	Previous() (string, error)
	VolumeUp() (string, error)
	VolumeDown() (string, error)

	// SetVolume sets the absolute volume, clamped to [0, 127].
	SetVolume(level int) (string, error)
}
