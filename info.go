package atsbt

import (
	"strings"

	"github.com/ats-engineering/atsbt/api/bluetooth"
	"github.com/ats-engineering/atsbt/commands"
)

// LocalAddress returns the module's own Bluetooth MAC address, querying the
// device once and caching the result for the life of the session. When the
// response cannot be parsed, the raw text is returned for diagnosis.
func (s *Session) LocalAddress() (string, error) {
	if s.cachedAddr != "" {
		return s.cachedAddr, nil
	}

	response, err := s.send(commands.GetLocalAddr())
	if err != nil {
		return "", err
	}

	if value, ok := parseKeyValue(response, "LOCAL_ADDR"); ok {
		s.cachedAddr = value
		return value, nil
	}

	return response, nil
}

// Name returns the module's Bluetooth display name.
func (s *Session) Name() (string, error) {
	response, err := s.send(commands.GetName())
	if err != nil {
		return "", err
	}

	if value, ok := parseKeyValue(response, "NAME"); ok {
		return value, nil
	}

	return response, nil
}

// Version returns the module's firmware version string.
func (s *Session) Version() (string, error) {
	return s.send(commands.Version())
}

// Status returns the module status, with the trailing OK marker stripped.
func (s *Session) Status() (string, error) {
	response, err := s.send(commands.Status())
	if err != nil {
		return "", err
	}

	return stripTrailingOK(response), nil
}

// Info returns the aggregate device information.
func (s *Session) Info() (bluetooth.DeviceInfo, error) {
	var info bluetooth.DeviceInfo
	var err error

	if info.MacAddress, err = s.LocalAddress(); err != nil {
		return info, err
	}
	if info.Name, err = s.Name(); err != nil {
		return info, err
	}
	if info.Version, err = s.Version(); err != nil {
		return info, err
	}
	if info.Status, err = s.Status(); err != nil {
		return info, err
	}
	info.Port = s.portName

	return info, nil
}

// IsPaired reports whether the module has an active pairing with a host.
func (s *Session) IsPaired() (bool, error) {
	status, err := s.Status()
	if err != nil {
		return false, err
	}

	upper := strings.ToUpper(status)

	return strings.Contains(upper, "CONNECTION") || strings.Contains(upper, "PAIRED"), nil
}

// IsDiscoverable reports whether the module is in discoverable mode.
func (s *Session) IsDiscoverable() (bool, error) {
	status, err := s.Status()
	if err != nil {
		return false, err
	}

	return strings.Contains(strings.ToUpper(status), "DISCOVERABLE"), nil
}

// PairedDevices returns the module's paired device list as raw text.
func (s *Session) PairedDevices() (string, error) {
	return s.send(commands.List())
}

// StopDiscovery cancels a running inquiry.
func (s *Session) StopDiscovery() (string, error) {
	return s.send(commands.InquiryOff())
}

// Unpair removes the pairing with the addressed peer.
func (s *Session) Unpair(address bluetooth.Address) (string, error) {
	return s.send(commands.Unpair(address))
}

// ConnectAudio connects to an already paired audio peer.
func (s *Session) ConnectAudio(address bluetooth.Address) (string, error) {
	return s.send(commands.ConnectAudio(address))
}

// DisconnectAudio drops the current audio connection.
func (s *Session) DisconnectAudio() (string, error) {
	return s.send(commands.DisconnectAudio())
}

// parseKeyValue extracts the value for a key from response text of the form
// "KEY=VALUE" or "KEY VALUE". The module sometimes glues the trailing OK
// marker onto the value without a line ending; it is stripped.
func parseKeyValue(response, key string) (string, bool) {
	for _, line := range strings.Split(response, "\n") {
		if !strings.Contains(line, key) {
			continue
		}

		if i := strings.IndexByte(line, '='); i >= 0 {
			return stripTrailingOK(line[i+1:]), true
		}

		fields := strings.Fields(line)
		if len(fields) >= 2 {
			return stripTrailingOK(fields[len(fields)-1]), true
		}
	}

	return "", false
}

func stripTrailingOK(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, commands.MarkerOK) {
		value = value[:len(value)-len(commands.MarkerOK)]
	}

	return strings.TrimSpace(value)
}
