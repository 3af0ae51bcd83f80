// Package commands builds the text command lines understood by the ATS-BT
// module, together with the terminal markers and response timeouts that
// govern each command's send/await cycle.
package commands

import (
	"strconv"
	"strings"
	"time"

	"github.com/ats-engineering/atsbt/api/bluetooth"
)

// Media control actions understood by the module.
const (
	ActionPlay       = "PLAY"
	ActionPause      = "PAUSE"
	ActionStop       = "STOP"
	ActionForward    = "FORWARD"
	ActionBackward   = "BACKWARD"
	ActionVolumeUp   = "VOL_UP"
	ActionVolumeDown = "VOL_DOWN"
)

// Volume bounds accepted by the module.
const (
	VolumeMin = 0
	VolumeMax = 127
)

// Command is a single outbound instruction: a text line plus a response
// timeout and the terminal markers that signal the response is complete.
// A zero timeout selects the session's configured default.
type Command struct {
	text    string
	timeout time.Duration
	markers []string
}

// Raw wraps an arbitrary command line with the default terminal markers.
func Raw(text string) Command {
	return Command{text: strings.TrimSpace(text), markers: DefaultMarkers()}
}

// Text returns the command text without a line terminator.
func (c Command) Text() string {
	return c.text
}

// Line returns the command text terminated by a carriage return, as the
// module expects it on the wire.
func (c Command) Line() string {
	if strings.HasSuffix(c.text, "\r") {
		return c.text
	}

	return c.text + "\r"
}

// Timeout returns the command's response timeout, zero meaning the session
// default.
func (c Command) Timeout() time.Duration {
	return c.timeout
}

// Markers returns the command's terminal marker set.
func (c Command) Markers() []string {
	return c.markers
}

// WithTimeout returns a copy of the command with the given response timeout.
func (c Command) WithTimeout(d time.Duration) Command {
	c.timeout = d
	return c
}

// String converts a Command to a string.
func (c Command) String() string {
	return c.text
}

// Device information commands.

func GetLocalAddr() Command {
	return Raw("GET LOCAL_ADDR")
}

func GetName() Command {
	return Raw("GET NAME")
}

func Version() Command {
	return Raw("VERSION")
}

func Status() Command {
	return Raw("STATUS")
}

func List() Command {
	return Raw("LIST")
}

// Discovery commands.

// Inquiry starts a device inquiry for the given number of seconds. Results
// stream in as multiple asynchronous lines; the command carries no terminal
// markers and is written directly on the transport by the scan workflow.
func Inquiry(seconds int) Command {
	return Command{text: "INQUIRY " + strconv.Itoa(seconds)}
}

func InquiryOff() Command {
	return Raw("INQUIRY OFF")
}

// Pairing and connection commands.

func Pair(address bluetooth.Address) Command {
	return Raw("PAIR " + address.String())
}

func Unpair(address bluetooth.Address) Command {
	return Raw("UNPAIR " + address.String())
}

func ConnectAudio(address bluetooth.Address) Command {
	return Raw("CONNECT " + address.String()).WithTimeout(10 * time.Second)
}

func DisconnectAudio() Command {
	return Raw("DISCONNECT")
}

// Open opens a profile channel to the addressed peer. Completion is
// reported by OPEN_OK or ERROR, possibly after a PENDING acknowledgment.
func Open(address bluetooth.Address, profile bluetooth.Profile) Command {
	return Command{
		text:    "OPEN " + address.String() + " " + profile.Keyword(),
		markers: OpenMarkers(),
	}
}

// Media commands.

// Music addresses a media action to an open link.
func Music(linkID, action string) Command {
	return Raw("MUSIC " + linkID + " " + action)
}

// Avrcp sends a media action without a link id, for peers connected before
// any profile link was tracked.
func Avrcp(action string) Command {
	return Raw("AVRCP " + action)
}

// Volume sets the absolute volume on a link, clamped to [VolumeMin,
// VolumeMax] before transmission.
func Volume(linkID string, level int) Command {
	return Raw("VOLUME " + linkID + " " + strconv.Itoa(ClampVolume(level)))
}

// CloseLink closes an open profile link.
func CloseLink(linkID string) Command {
	return Raw("CLOSE " + linkID)
}

// Reset restarts the module.
func Reset() Command {
	return Raw("RESET")
}

// ClampVolume clamps a volume level to the range the module accepts.
func ClampVolume(level int) int {
	if level < VolumeMin {
		return VolumeMin
	}
	if level > VolumeMax {
		return VolumeMax
	}

	return level
}
