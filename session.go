// Package atsbt controls an ATS-BT Bluetooth module attached over a USB-CDC
// serial link. It provides a serialized command/response engine speaking the
// module's line-oriented text protocol, with discovery, pairing,
// profile-open and media control workflows layered on top.
package atsbt

import (
	"strings"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog/log"

	"github.com/ats-engineering/atsbt/api/bluetooth"
	"github.com/ats-engineering/atsbt/api/config"
	"github.com/ats-engineering/atsbt/api/errorkinds"
	"github.com/ats-engineering/atsbt/api/eventbus"
	"github.com/ats-engineering/atsbt/commands"
	"github.com/ats-engineering/atsbt/serialport"
)

const (
	// pollInterval is the sleep between transport polls while awaiting a
	// command response.
	pollInterval = 10 * time.Millisecond

	// workflowPollInterval paces the longer-running scan and profile-open
	// collection loops.
	workflowPollInterval = 50 * time.Millisecond

	// resetSettleDelay is how long the module takes to restart after RESET.
	resetSettleDelay = 3 * time.Second
)

// Session is a control session with one ATS-BT module. It owns its serial
// transport exclusively.
//
// Responses are attributed to commands purely by temporal adjacency; the
// protocol has no correlation identifier. The session therefore never
// pipelines commands: a mutex keeps at most one send in flight.
type Session struct {
	cfg config.Configuration

	transport serialport.Transport
	portName  string

	// mu serializes every send/await cycle on the transport.
	mu sync.Mutex

	// cachedAddr holds the module's own MAC address, populated once.
	cachedAddr string

	pairedAddr bluetooth.Address

	links        *xsync.MapOf[bluetooth.Profile, string]
	commandCount *xsync.Counter
}

var _ bluetooth.Session = (*Session)(nil)

// NewSession returns a session using the given configuration. The transport
// is not opened until Connect is called.
func NewSession(cfg config.Configuration) *Session {
	return &Session{
		cfg:          cfg,
		links:        xsync.NewMapOf[bluetooth.Profile, string](),
		commandCount: xsync.NewCounter(),
	}
}

// Connect opens the serial transport to the module. When no port is
// configured, the module is auto-detected by its USB identifiers. Connect on
// an already connected session is a no-op.
func (s *Session) Connect() error {
	if s.transport != nil {
		return nil
	}

	name := s.cfg.PortName
	if name == "" {
		detected, err := serialport.FindDevice()
		if err != nil {
			return err
		}
		name = detected
	}

	transport, err := serialport.Open(name, s.cfg.BaudRate)
	if err != nil {
		return err
	}

	s.transport = transport
	s.portName = name

	// Let the CDC endpoint settle before the first command.
	time.Sleep(s.cfg.SettleDelay)

	log.Info().Str("port", name).Msg("connected to ATS-BT module")

	return nil
}

// Disconnect closes every tracked profile link (best effort) and the
// transport. A second call is a no-op.
func (s *Session) Disconnect() error {
	if s.transport == nil {
		return nil
	}

	s.CloseLinks()

	err := s.transport.Close()
	s.transport = nil
	s.portName = ""

	log.Info().Msg("disconnected from ATS-BT module")

	return err
}

// Connected reports whether the transport is open.
func (s *Session) Connected() bool {
	return s.transport != nil
}

// Port returns the serial port path of the open transport.
func (s *Session) Port() string {
	return s.portName
}

// CommandCount returns the number of commands written to the module over
// the lifetime of the session.
func (s *Session) CommandCount() int64 {
	return s.commandCount.Value()
}

// Command sends a raw command line and returns the collected response text.
// A zero timeout selects the configured default. A timeout yields whatever
// partial response was collected, not an error.
func (s *Session) Command(text string, timeout time.Duration) (string, error) {
	return s.send(commands.Raw(text).WithTimeout(timeout))
}

// send runs one serialized send/await cycle for the command.
func (s *Session) send(cmd commands.Command) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transport == nil {
		return "", errorkinds.ErrNotConnected
	}

	timeout := cmd.Timeout()
	if timeout <= 0 {
		timeout = s.cfg.ResponseTimeout
	}

	// Discard stale output so a previous command's stragglers are not
	// attributed to this one.
	s.transport.ResetInput()

	if err := s.transport.WriteString(cmd.Line()); err != nil {
		return "", err
	}
	s.commandCount.Inc()

	reader := &lineReader{transport: s.transport}
	lines := collectLines(reader, cmd.Markers(), time.Now().Add(timeout), pollInterval)

	// Firmware pacing: a hard minimum delay before the next command.
	time.Sleep(s.cfg.CommandDelay)

	response := strings.Join(lines, "\n")
	log.Trace().Str("command", cmd.Text()).Str("response", response).Msg("command cycle")

	return response, nil
}

// CloseLinks closes every tracked profile link with an independent CLOSE
// command. Bookkeeping is cleared regardless of the close outcome; a failure
// closing one link never skips the others.
func (s *Session) CloseLinks() {
	for _, profile := range bluetooth.Profiles() {
		linkID, ok := s.links.LoadAndDelete(profile)
		if !ok {
			continue
		}

		if _, err := s.send(commands.CloseLink(linkID)); err != nil {
			log.Warn().Err(err).Str("profile", profile.String()).Str("link", linkID).
				Msg("close link failed")
		}

		eventbus.Publish(bluetooth.EventProfile, bluetooth.ProfileEventData{
			Link: bluetooth.ProfileLink{Profile: profile, LinkID: linkID},
		})
	}
}

// Link returns the tracked link for a profile, if one is open.
func (s *Session) Link(profile bluetooth.Profile) (bluetooth.ProfileLink, bool) {
	linkID, ok := s.links.Load(profile)
	if !ok {
		return bluetooth.ProfileLink{}, false
	}

	return bluetooth.ProfileLink{Profile: profile, LinkID: linkID}, true
}

// Reset restarts the module, then reopens the transport once the module has
// had time to come back up.
func (s *Session) Reset() error {
	if _, err := s.send(commands.Reset()); err != nil {
		return err
	}

	// Links do not survive a module restart; drop the bookkeeping without
	// attempting CLOSE commands against a resetting device.
	s.links.Clear()

	s.transport.Close()
	s.transport = nil
	s.portName = ""

	time.Sleep(resetSettleDelay)

	return s.Connect()
}

// lineReader accumulates transport bytes and splits off complete lines.
type lineReader struct {
	transport serialport.Transport
	partial   string
}

// poll drains one transport read and returns any complete, trimmed,
// non-empty lines.
func (r *lineReader) poll() ([]string, error) {
	data, err := r.transport.ReadAvailable()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	r.partial += string(data)

	var lines []string
	for {
		i := strings.IndexByte(r.partial, '\n')
		if i < 0 {
			break
		}

		line := strings.TrimSpace(r.partial[:i])
		r.partial = r.partial[i+1:]

		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines, nil
}

// collectLines polls the reader until a line carrying one of the markers
// arrives or the deadline passes. With no markers, it collects for the whole
// window. Read errors end collection with whatever was gathered.
func collectLines(r *lineReader, markers []string, deadline time.Time, interval time.Duration) []string {
	var lines []string

	for time.Now().Before(deadline) {
		batch, err := r.poll()
		if err != nil {
			break
		}

		for _, line := range batch {
			lines = append(lines, line)
			if commands.ContainsMarker(line, markers) {
				return lines
			}
		}

		time.Sleep(interval)
	}

	return lines
}
