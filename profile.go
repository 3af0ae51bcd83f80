package atsbt

import (
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ats-engineering/atsbt/api/bluetooth"
	"github.com/ats-engineering/atsbt/api/errorkinds"
	"github.com/ats-engineering/atsbt/api/eventbus"
	"github.com/ats-engineering/atsbt/commands"
)

// openLinkPattern extracts the link id the module assigns on OPEN_OK.
var openLinkPattern = regexp.MustCompile(`OPEN_OK[^\d]*(\d+)`)

// OpenProfile opens an A2DP or AVRCP channel to the addressed peer. A zero
// timeout selects the configured default.
//
// Completion is reported asynchronously: the transport is polled directly
// until an OPEN_OK or ERROR line arrives. A PENDING acknowledgment with no
// terminal marker gets a short grace window for a late OPEN_OK; when none
// arrives, the optimistic-acknowledgment policy assumes the open succeeded
// with the profile's default link id. No marker at all is a failure.
//
// A session tracks at most one link per profile kind; opening again replaces
// the bookkeeping without closing the previous link.
func (s *Session) OpenProfile(address bluetooth.Address, profile bluetooth.Profile, timeout time.Duration) (bluetooth.OpenResult, error) {
	if !address.IsValid() {
		return bluetooth.OpenResult{}, errorkinds.ErrInvalidAddress
	}
	if timeout <= 0 {
		timeout = s.cfg.ProfileOpenTimeout
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transport == nil {
		return bluetooth.OpenResult{}, errorkinds.ErrNotConnected
	}

	s.transport.ResetInput()

	cmd := commands.Open(address, profile)
	if err := s.transport.WriteString(cmd.Line()); err != nil {
		return bluetooth.OpenResult{}, err
	}
	s.commandCount.Inc()

	reader := &lineReader{transport: s.transport}
	lines := collectLines(reader, cmd.Markers(), time.Now().Add(timeout), workflowPollInterval)
	raw := strings.Join(lines, "\n")

	result := bluetooth.OpenResult{Raw: raw}
	switch {
	case strings.Contains(raw, commands.MarkerOpenOK):
		result.Opened = true
		result.Link = bluetooth.ProfileLink{
			Profile: profile,
			LinkID:  extractLinkID(raw, profile),
		}

	case strings.Contains(raw, commands.MarkerError):

	case strings.Contains(raw, commands.MarkerPending):
		// The open is in progress; the firmware may still report
		// completion out-of-band.
		time.Sleep(s.cfg.PendingGrace)

		if line, ok := drainForMarker(reader, commands.MarkerOpenOK); ok {
			result.Opened = true
			result.Link = bluetooth.ProfileLink{
				Profile: profile,
				LinkID:  extractLinkID(line, profile),
			}
		} else if s.cfg.OptimisticAck {
			result.Opened = true
			result.Assumed = true
			result.Link = bluetooth.ProfileLink{
				Profile: profile,
				LinkID:  profile.DefaultLinkID(),
			}
		}
	}

	if result.Opened {
		s.links.Store(profile, result.Link.LinkID)
	}

	log.Debug().Str("address", address.String()).Str("profile", profile.String()).
		Bool("opened", result.Opened).Bool("assumed", result.Assumed).
		Str("link", result.Link.LinkID).
		Msg("profile open resolved")

	eventbus.Publish(bluetooth.EventProfile, bluetooth.ProfileEventData{
		Address: address,
		Link:    result.Link,
		Opened:  result.Opened,
		Assumed: result.Assumed,
	})

	return result, nil
}

// extractLinkID pulls the trailing link id off an OPEN_OK line, falling back
// to the profile's default when the module reported none.
func extractLinkID(text string, profile bluetooth.Profile) string {
	if m := openLinkPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	return profile.DefaultLinkID()
}

// drainForMarker empties whatever the transport has buffered and returns the
// first line carrying the marker. It stops as soon as a poll comes back
// empty.
func drainForMarker(r *lineReader, marker string) (string, bool) {
	for {
		batch, err := r.poll()
		if err != nil || len(batch) == 0 {
			return "", false
		}

		for _, line := range batch {
			if strings.Contains(line, marker) {
				return line, true
			}
		}
	}
}
