package serialport

import (
	"strings"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial/enumerator"

	"github.com/ats-engineering/atsbt/api/errorkinds"
)

// STM32 USB-CDC identifiers presented by the ATS-BT module.
const (
	VendorID  = "0483"
	ProductID = "5740"
)

// PortInfo describes one enumerated serial port.
type PortInfo struct {
	Device      string `json:"device"`
	Description string `json:"description,omitempty"`
	VID         string `json:"vid,omitempty"`
	PID         string `json:"pid,omitempty"`

	// IsATSBT is set when the port's USB identifiers match the module.
	IsATSBT bool `json:"is_ats_bt"`
}

// ListPorts enumerates all serial ports with their USB details.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, PortInfo{
			Device:      d.Name,
			Description: d.Product,
			VID:         d.VID,
			PID:         d.PID,
			IsATSBT:     isModulePort(d),
		})
	}

	return ports, nil
}

// FindDevice auto-detects the ATS-BT device port. USB identifiers are
// checked first; the port description is a fallback for adapters that do not
// report them.
func FindDevice() (string, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", err
	}

	for _, d := range details {
		if isModulePort(d) {
			log.Debug().Str("port", d.Name).Msg("found ATS-BT device by VID:PID")
			return d.Name, nil
		}
	}

	for _, d := range details {
		desc := strings.ToUpper(d.Product)
		for _, hint := range []string{"STM32", "CDC", "ATS"} {
			if strings.Contains(desc, hint) {
				log.Debug().Str("port", d.Name).Str("hint", hint).Msg("found candidate device by description")
				return d.Name, nil
			}
		}
	}

	return "", errorkinds.ErrDeviceNotFound
}

func isModulePort(d *enumerator.PortDetails) bool {
	return strings.EqualFold(d.VID, VendorID) && strings.EqualFold(d.PID, ProductID)
}
