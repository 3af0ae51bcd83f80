package bluetooth

// EventID identifies a class of session events on the event bus.
type EventID uint

const (
	EventNone EventID = iota

	// EventDeviceFound carries a DiscoveredDevice for each inquiry hit.
	EventDeviceFound

	// EventPairing carries a PairingEventData when a pairing attempt
	// resolves.
	EventPairing

	// EventProfile carries a ProfileEventData when a profile-open attempt
	// resolves or a link is closed.
	EventProfile
)

var eventNames = map[EventID]string{
	EventNone:        "event-none",
	EventDeviceFound: "device-found",
	EventPairing:     "pairing",
	EventProfile:     "profile",
}

// Value returns the numeric identity of the event.
func (e EventID) Value() uint {
	return uint(e)
}

// String converts an EventID to a string.
func (e EventID) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}

	return "event-unknown"
}

// PairingEventData describes the outcome of a pairing attempt.
type PairingEventData struct {
	Address Address `json:"address"`
	Paired  bool    `json:"paired"`
	Assumed bool    `json:"assumed,omitempty"`
}

// ProfileEventData describes a change to a profile link.
type ProfileEventData struct {
	Address Address     `json:"address,omitempty"`
	Link    ProfileLink `json:"link"`
	Opened  bool        `json:"opened"`
	Assumed bool        `json:"assumed,omitempty"`
}
