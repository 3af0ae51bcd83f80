package bluetooth

import "testing"

func TestAddressIsValid(t *testing.T) {
	tests := []struct {
		addr Address
		want bool
	}{
		{"F84E1776FDB1", true},
		{"aabbccddeeff", true},
		{"AABBCCDDEEF", false},
		{"AABBCCDDEEFF00", false},
		{"ZZBBCCDDEEFF", false},
		{"AABBCCDDEEF ", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.addr.IsValid(); got != tt.want {
			t.Errorf("Address(%q).IsValid() = %v, want %v", tt.addr, got, tt.want)
		}
	}
}

func TestProfileDescriptors(t *testing.T) {
	tests := []struct {
		profile     Profile
		keyword     string
		defaultLink string
		uuidPrefix  string
	}{
		{A2DP, "A2DP", "10", "0000110d"},
		{AVRCP, "AVRCP", "11", "0000110e"},
	}

	for _, tt := range tests {
		if got := tt.profile.Keyword(); got != tt.keyword {
			t.Errorf("%v.Keyword() = %q, want %q", tt.profile, got, tt.keyword)
		}
		if got := tt.profile.DefaultLinkID(); got != tt.defaultLink {
			t.Errorf("%v.DefaultLinkID() = %q, want %q", tt.profile, got, tt.defaultLink)
		}
		if got := tt.profile.ServiceUUID().String()[:8]; got != tt.uuidPrefix {
			t.Errorf("%v.ServiceUUID() = %q, want prefix %q", tt.profile, got, tt.uuidPrefix)
		}
	}
}

func TestEventIDStrings(t *testing.T) {
	tests := []struct {
		id   EventID
		want string
	}{
		{EventDeviceFound, "device-found"},
		{EventPairing, "pairing"},
		{EventProfile, "profile"},
		{EventID(99), "event-unknown"},
	}

	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("EventID(%d).String() = %q, want %q", tt.id, got, tt.want)
		}
	}
}
