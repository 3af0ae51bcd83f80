package commands

import (
	"testing"
	"time"

	"github.com/ats-engineering/atsbt/api/bluetooth"
)

func TestBuilderText(t *testing.T) {
	addr := bluetooth.Address("F84E1776FDB1")

	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"local addr", GetLocalAddr(), "GET LOCAL_ADDR"},
		{"name", GetName(), "GET NAME"},
		{"version", Version(), "VERSION"},
		{"status", Status(), "STATUS"},
		{"list", List(), "LIST"},
		{"inquiry", Inquiry(5), "INQUIRY 5"},
		{"inquiry off", InquiryOff(), "INQUIRY OFF"},
		{"pair", Pair(addr), "PAIR F84E1776FDB1"},
		{"unpair", Unpair(addr), "UNPAIR F84E1776FDB1"},
		{"connect", ConnectAudio(addr), "CONNECT F84E1776FDB1"},
		{"disconnect", DisconnectAudio(), "DISCONNECT"},
		{"open a2dp", Open(addr, bluetooth.A2DP), "OPEN F84E1776FDB1 A2DP"},
		{"open avrcp", Open(addr, bluetooth.AVRCP), "OPEN F84E1776FDB1 AVRCP"},
		{"music", Music("11", ActionPlay), "MUSIC 11 PLAY"},
		{"avrcp action", Avrcp(ActionVolumeUp), "AVRCP VOL_UP"},
		{"volume", Volume("11", 64), "VOLUME 11 64"},
		{"volume clamped high", Volume("11", 300), "VOLUME 11 127"},
		{"volume clamped low", Volume("11", -1), "VOLUME 11 0"},
		{"close", CloseLink("10"), "CLOSE 10"},
		{"reset", Reset(), "RESET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineAppendsCarriageReturn(t *testing.T) {
	if got := Status().Line(); got != "STATUS\r" {
		t.Errorf("Line() = %q, want %q", got, "STATUS\r")
	}

	// An already terminated command is left alone.
	if got := Raw("STATUS\r").Line(); got != "STATUS\r" {
		t.Errorf("Line() = %q, want a single terminator", got)
	}
}

func TestTimeouts(t *testing.T) {
	if d := Status().Timeout(); d != 0 {
		t.Errorf("Status timeout = %v, want 0 (session default)", d)
	}
	if d := ConnectAudio("F84E1776FDB1").Timeout(); d != 10*time.Second {
		t.Errorf("ConnectAudio timeout = %v, want 10s", d)
	}
	if d := Status().WithTimeout(time.Second).Timeout(); d != time.Second {
		t.Errorf("WithTimeout = %v, want 1s", d)
	}
}

func TestMarkerSets(t *testing.T) {
	if got := Status().Markers(); len(got) != 4 {
		t.Errorf("default markers = %v, want OK/ERROR/PENDING/ACK", got)
	}

	open := Open("F84E1776FDB1", bluetooth.A2DP).Markers()
	if len(open) != 2 || open[0] != MarkerOpenOK || open[1] != MarkerError {
		t.Errorf("open markers = %v, want OPEN_OK and ERROR only", open)
	}

	// Inquiry results stream asynchronously; the command must not carry
	// terminal markers.
	if got := Inquiry(5).Markers(); len(got) != 0 {
		t.Errorf("inquiry markers = %v, want none", got)
	}
}

func TestContainsMarker(t *testing.T) {
	markers := DefaultMarkers()

	tests := []struct {
		line string
		want bool
	}{
		{"STATUS OK", true},
		{"ERROR 0x42", true},
		{"PENDING", true},
		{"ACK", true},
		{"PAIR_OK", true},
		{"nothing terminal here", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ContainsMarker(tt.line, markers); got != tt.want {
			t.Errorf("ContainsMarker(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}

	if ContainsMarker("STATUS OK", nil) {
		t.Error("ContainsMarker with no markers must never match")
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 0},
		{0, 0},
		{64, 64},
		{127, 127},
		{200, 127},
	}

	for _, tt := range tests {
		if got := ClampVolume(tt.in); got != tt.want {
			t.Errorf("ClampVolume(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
