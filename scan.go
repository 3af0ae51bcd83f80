package atsbt

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ats-engineering/atsbt/api/bluetooth"
	"github.com/ats-engineering/atsbt/api/errorkinds"
	"github.com/ats-engineering/atsbt/api/eventbus"
	"github.com/ats-engineering/atsbt/commands"
)

// inquiryHitPattern matches a structured inquiry hit:
//
//	INQUIRY F84E1776FDB1 "LinkBuds S" 240404 -61 dBm
var inquiryHitPattern = regexp.MustCompile(
	`INQUIRY\s+([0-9A-Fa-f]{12})\s+"([^"]+)"\s+([0-9A-Fa-f]+)\s+(-?\d+)`)

// Scan runs a device inquiry for the given duration and returns the hits in
// the order first observed. A device heard more than once yields one entry
// per hit; the caller decides whether to deduplicate.
//
// Inquiry results stream in as asynchronous lines over the whole window, so
// the command bypasses the single-response engine: it is written directly on
// the transport and the transport is polled for the duration plus a fixed
// grace period.
func (s *Session) Scan(duration time.Duration) ([]bluetooth.DiscoveredDevice, error) {
	seconds := int(duration / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transport == nil {
		return nil, errorkinds.ErrNotConnected
	}

	s.transport.ResetInput()

	if err := s.transport.WriteString(commands.Inquiry(seconds).Line()); err != nil {
		return nil, err
	}
	s.commandCount.Inc()

	reader := &lineReader{transport: s.transport}
	deadline := time.Now().Add(duration + s.cfg.ScanGrace)
	lines := collectLines(reader, nil, deadline, workflowPollInterval)

	devices := parseInquiryLines(lines)
	for _, device := range devices {
		log.Debug().Str("address", device.Address.String()).Str("name", device.Name).
			Msg("inquiry hit")
		eventbus.Publish(bluetooth.EventDeviceFound, device)
	}

	return devices, nil
}

// parseInquiryLines extracts discovered devices from raw inquiry output.
// Malformed lines contribute no device and do not abort the scan.
func parseInquiryLines(lines []string) []bluetooth.DiscoveredDevice {
	var devices []bluetooth.DiscoveredDevice

	for _, line := range lines {
		// The module sometimes glues a stray PENDING acknowledgment
		// directly onto an inquiry hit; strip it to recover the line.
		line = strings.ReplaceAll(line,
			commands.MarkerPending+commands.MarkerInquiryHit, commands.MarkerInquiryHit)

		if !isInquiryHit(line) {
			continue
		}

		if device, ok := parseInquiryHit(line); ok {
			devices = append(devices, device)
		}
	}

	return devices
}

// isInquiryHit reports whether a line is an inquiry result, excluding the
// acknowledgment and completion lines that share the INQUIRY substring.
func isInquiryHit(line string) bool {
	return strings.Contains(line, commands.MarkerInquiryHit+" ") &&
		!strings.Contains(line, commands.MarkerInquiryAck) &&
		!strings.Contains(line, commands.MarkerInquiryStatus)
}

func parseInquiryHit(line string) (bluetooth.DiscoveredDevice, bool) {
	if m := inquiryHitPattern.FindStringSubmatch(line); m != nil {
		device := bluetooth.DiscoveredDevice{
			Address: bluetooth.Address(m[1]),
			Name:    m[2],
		}
		if rssi, err := strconv.Atoi(m[4]); err == nil {
			device.RSSI = &rssi
		}

		return device, true
	}

	// Fallback for unquoted hits: the token after INQUIRY is taken as the
	// address only when it is exactly 12 hex digits.
	fields := strings.Fields(line)
	for i, field := range fields {
		if field != commands.MarkerInquiryHit {
			continue
		}

		if i+1 < len(fields) {
			address := bluetooth.Address(fields[i+1])
			if address.IsValid() {
				return bluetooth.DiscoveredDevice{
					Address: address,
					Name:    bluetooth.UnknownName,
				}, true
			}
		}

		break
	}

	return bluetooth.DiscoveredDevice{}, false
}
