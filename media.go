package atsbt

import (
	"github.com/ats-engineering/atsbt/api/bluetooth"
	"github.com/ats-engineering/atsbt/commands"
)

// mediaPlayer addresses media control commands to the session's AVRCP link.
type mediaPlayer struct {
	session *Session
}

var _ bluetooth.MediaPlayer = (*mediaPlayer)(nil)

// MediaPlayer returns a function call interface to invoke media control
// related functions on the connected peer.
func (s *Session) MediaPlayer() bluetooth.MediaPlayer {
	return &mediaPlayer{session: s}
}

// control sends a MUSIC action on the tracked AVRCP link, falling back to
// the bare AVRCP command when no link is tracked.
func (m *mediaPlayer) control(action string) (string, error) {
	if linkID, ok := m.session.links.Load(bluetooth.AVRCP); ok {
		return m.session.send(commands.Music(linkID, action))
	}

	return m.session.send(commands.Avrcp(action))
}

// Play starts playback.
func (m *mediaPlayer) Play() (string, error) {
	return m.control(commands.ActionPlay)
}

// Pause pauses playback.
func (m *mediaPlayer) Pause() (string, error) {
	return m.control(commands.ActionPause)
}

// Stop stops playback.
func (m *mediaPlayer) Stop() (string, error) {
	return m.control(commands.ActionStop)
}

// Next skips to the next track.
func (m *mediaPlayer) Next() (string, error) {
	return m.session.send(commands.Avrcp(commands.ActionForward))
}

// Previous returns to the previous track.
func (m *mediaPlayer) Previous() (string, error) {
	return m.session.send(commands.Avrcp(commands.ActionBackward))
}

// VolumeUp raises the volume one step.
func (m *mediaPlayer) VolumeUp() (string, error) {
	return m.session.send(commands.Avrcp(commands.ActionVolumeUp))
}

// VolumeDown lowers the volume one step.
func (m *mediaPlayer) VolumeDown() (string, error) {
	return m.session.send(commands.Avrcp(commands.ActionVolumeDown))
}

// SetVolume sets the absolute volume on the AVRCP link, clamped to
// [0, 127]. The profile default link id is used when no link is tracked.
func (m *mediaPlayer) SetVolume(level int) (string, error) {
	linkID, ok := m.session.links.Load(bluetooth.AVRCP)
	if !ok {
		linkID = bluetooth.AVRCP.DefaultLinkID()
	}

	return m.session.send(commands.Volume(linkID, level))
}
