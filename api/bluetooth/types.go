// Package bluetooth defines the data types and call interfaces exposed by an
// ATS-BT control session.
package bluetooth

import (
	"github.com/google/uuid"
)

// Address is a Bluetooth device address as the ATS-BT module reports it
// during inquiry: 12 hexadecimal digits with no separators, for example
// "F84E1776FDB1".
type Address string

// String converts an Address to a string.
func (a Address) String() string {
	return string(a)
}

// IsValid reports whether the address is exactly 12 hexadecimal digits.
func (a Address) IsValid() bool {
	if len(a) != 12 {
		return false
	}

	for _, c := range a {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}

	return true
}

// Profile is a Bluetooth application-layer channel kind.
type Profile int

const (
	// A2DP is the audio streaming profile.
	A2DP Profile = iota

	// AVRCP is the remote control profile.
	AVRCP
)

// profileDescriptor holds the per-profile command keyword, the link id the
// module assigns when it does not report one, and the SDP service class UUID.
type profileDescriptor struct {
	keyword     string
	defaultLink string
	serviceUUID uuid.UUID
}

var profileTable = map[Profile]profileDescriptor{
	A2DP: {
		keyword:     "A2DP",
		defaultLink: "10",
		serviceUUID: uuid.MustParse("0000110D-0000-1000-8000-00805F9B34FB"),
	},
	AVRCP: {
		keyword:     "AVRCP",
		defaultLink: "11",
		serviceUUID: uuid.MustParse("0000110E-0000-1000-8000-00805F9B34FB"),
	},
}

// Keyword returns the profile name used on the wire ("A2DP" or "AVRCP").
func (p Profile) Keyword() string {
	return profileTable[p].keyword
}

// DefaultLinkID returns the link id assumed for the profile when the module
// does not report one.
func (p Profile) DefaultLinkID() string {
	return profileTable[p].defaultLink
}

// ServiceUUID returns the SDP service class UUID for the profile.
func (p Profile) ServiceUUID() uuid.UUID {
	return profileTable[p].serviceUUID
}

// String converts a Profile to a string.
func (p Profile) String() string {
	return p.Keyword()
}

// Profiles lists every profile kind a session can track.
func Profiles() []Profile {
	return []Profile{A2DP, AVRCP}
}

// DiscoveredDevice describes one inquiry hit.
type DiscoveredDevice struct {
	Address Address `json:"address"`
	Name    string  `json:"name"`

	// RSSI is nil when the module did not report a parsable signal
	// strength for this hit.
	RSSI *int `json:"rssi,omitempty"`
}

// UnknownName is the display name recorded for inquiry hits whose name could
// not be parsed.
const UnknownName = "Unknown"

// ProfileLink is one open audio/control channel to a paired peer.
type ProfileLink struct {
	Profile Profile `json:"profile"`
	LinkID  string  `json:"link_id"`
}

// DeviceInfo aggregates the immutable facts a module reports about itself.
type DeviceInfo struct {
	Port       string `json:"port"`
	MacAddress string `json:"mac_address"`
	Name       string `json:"name"`
	Version    string `json:"version"`
	Status     string `json:"status"`
}

// PairResult is the outcome of a pairing attempt.
type PairResult struct {
	// Paired reports whether the session now treats the peer as paired.
	Paired bool `json:"paired"`

	// Assumed is set when the module gave an ambiguous acknowledgment and
	// the optimistic-acknowledgment policy recorded the pairing anyway.
	Assumed bool `json:"assumed,omitempty"`

	// Raw preserves the device output for diagnostics.
	Raw string `json:"raw,omitempty"`
}

// OpenResult is the outcome of a profile-open attempt.
type OpenResult struct {
	Opened bool `json:"opened"`

	// Assumed is set when the open completed under the
	// optimistic-acknowledgment policy rather than an explicit OPEN_OK.
	Assumed bool `json:"assumed,omitempty"`

	Link ProfileLink `json:"link,omitempty"`
	Raw  string      `json:"raw,omitempty"`
}
