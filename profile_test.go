package atsbt

import (
	"strings"
	"testing"
	"time"

	"github.com/ats-engineering/atsbt/api/bluetooth"
)

func TestOpenProfileExplicitSuccess(t *testing.T) {
	mt := newMockTransport()
	mt.respond = func(cmd string) []string {
		if strings.HasPrefix(cmd, "OPEN ") {
			return []string{"OPEN_OK 42"}
		}
		return nil
	}

	s := newTestSession(t, mt)

	result, err := s.OpenProfile(peerAddress, bluetooth.A2DP, 0)
	if err != nil {
		t.Fatalf("OpenProfile: %v", err)
	}

	if !result.Opened || result.Assumed {
		t.Fatalf("result = %+v, want an explicit open", result)
	}
	if result.Link.LinkID != "42" {
		t.Errorf("link id = %q, want 42", result.Link.LinkID)
	}

	link, ok := s.Link(bluetooth.A2DP)
	if !ok || link.LinkID != "42" {
		t.Errorf("tracked link = %+v (ok=%v), want 42", link, ok)
	}

	if got := mt.lastWrite(); got != "OPEN F84E1776FDB1 A2DP" {
		t.Errorf("wrote %q, want %q", got, "OPEN F84E1776FDB1 A2DP")
	}
}

func TestOpenProfileSuccessWithoutLinkID(t *testing.T) {
	mt := newMockTransport()
	mt.respond = func(string) []string { return []string{"OPEN_OK"} }

	s := newTestSession(t, mt)

	result, err := s.OpenProfile(peerAddress, bluetooth.AVRCP, 0)
	if err != nil {
		t.Fatalf("OpenProfile: %v", err)
	}

	if !result.Opened {
		t.Fatal("open must succeed on OPEN_OK")
	}
	if result.Link.LinkID != "11" {
		t.Errorf("link id = %q, want the AVRCP default 11", result.Link.LinkID)
	}
}

func TestOpenProfileError(t *testing.T) {
	mt := newMockTransport()
	mt.respond = func(string) []string { return []string{"ERROR 0x10"} }

	s := newTestSession(t, mt)

	result, err := s.OpenProfile(peerAddress, bluetooth.A2DP, 0)
	if err != nil {
		t.Fatalf("OpenProfile: %v", err)
	}

	if result.Opened {
		t.Error("open must fail on ERROR")
	}
	if _, ok := s.Link(bluetooth.A2DP); ok {
		t.Error("failed open must not track a link")
	}
}

func TestOpenProfilePendingThenLateSuccess(t *testing.T) {
	mt := newMockTransport()
	mt.respond = func(string) []string { return []string{"PENDING"} }

	s := newTestSession(t, mt)
	s.cfg.ProfileOpenTimeout = 100 * time.Millisecond
	s.cfg.PendingGrace = 60 * time.Millisecond

	// The completion arrives out-of-band: after the collection window
	// closed but inside the pending grace drain.
	mt.enqueue(120*time.Millisecond, "OPEN_OK 7")

	result, err := s.OpenProfile(peerAddress, bluetooth.A2DP, 0)
	if err != nil {
		t.Fatalf("OpenProfile: %v", err)
	}

	if !result.Opened || result.Assumed {
		t.Fatalf("result = %+v, want an explicit late open", result)
	}
	if result.Link.LinkID != "7" {
		t.Errorf("link id = %q, want 7", result.Link.LinkID)
	}
}

func TestOpenProfilePendingOptimisticDefault(t *testing.T) {
	mt := newMockTransport()
	mt.respond = func(string) []string { return []string{"OPEN F84E1776FDB1 PENDING"} }

	s := newTestSession(t, mt)
	s.cfg.ProfileOpenTimeout = 100 * time.Millisecond

	result, err := s.OpenProfile(peerAddress, bluetooth.A2DP, 0)
	if err != nil {
		t.Fatalf("OpenProfile: %v", err)
	}

	if !result.Opened || !result.Assumed {
		t.Fatalf("result = %+v, want an assumed open", result)
	}
	if result.Link.LinkID != "10" {
		t.Errorf("link id = %q, want the A2DP default 10", result.Link.LinkID)
	}
}

func TestOpenProfilePendingPolicyDisabled(t *testing.T) {
	mt := newMockTransport()
	mt.respond = func(string) []string { return []string{"PENDING"} }

	s := newTestSession(t, mt)
	s.cfg.ProfileOpenTimeout = 100 * time.Millisecond
	s.cfg.OptimisticAck = false

	result, err := s.OpenProfile(peerAddress, bluetooth.A2DP, 0)
	if err != nil {
		t.Fatalf("OpenProfile: %v", err)
	}

	if result.Opened {
		t.Error("ambiguous open must fail with the optimistic policy disabled")
	}
}

func TestOpenProfileSilenceFails(t *testing.T) {
	mt := newMockTransport()

	s := newTestSession(t, mt)
	s.cfg.ProfileOpenTimeout = 100 * time.Millisecond

	result, err := s.OpenProfile(peerAddress, bluetooth.A2DP, 0)
	if err != nil {
		t.Fatalf("OpenProfile: %v", err)
	}

	if result.Opened {
		t.Error("open with no marker at all must fail")
	}
	if result.Raw != "" {
		t.Errorf("raw = %q, want empty", result.Raw)
	}
}

func TestOpenProfileReplacesTrackedLink(t *testing.T) {
	mt := newMockTransport()
	reply := "OPEN_OK 42"
	mt.respond = func(cmd string) []string {
		if strings.HasPrefix(cmd, "OPEN ") {
			return []string{reply}
		}
		return nil
	}

	s := newTestSession(t, mt)

	if _, err := s.OpenProfile(peerAddress, bluetooth.A2DP, 0); err != nil {
		t.Fatalf("first OpenProfile: %v", err)
	}

	reply = "OPEN_OK 43"
	if _, err := s.OpenProfile(peerAddress, bluetooth.A2DP, 0); err != nil {
		t.Fatalf("second OpenProfile: %v", err)
	}

	link, ok := s.Link(bluetooth.A2DP)
	if !ok || link.LinkID != "43" {
		t.Errorf("tracked link = %+v (ok=%v), want the replacement 43", link, ok)
	}
}

func TestExtractLinkID(t *testing.T) {
	tests := []struct {
		text    string
		profile bluetooth.Profile
		want    string
	}{
		{"OPEN_OK 42", bluetooth.A2DP, "42"},
		{"STATUS OPEN_OK link=9", bluetooth.A2DP, "9"},
		{"OPEN_OK", bluetooth.A2DP, "10"},
		{"OPEN_OK", bluetooth.AVRCP, "11"},
	}

	for _, tt := range tests {
		if got := extractLinkID(tt.text, tt.profile); got != tt.want {
			t.Errorf("extractLinkID(%q, %v) = %q, want %q", tt.text, tt.profile, got, tt.want)
		}
	}
}
