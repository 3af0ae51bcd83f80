package atsbt

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ats-engineering/atsbt/api/bluetooth"
	"github.com/ats-engineering/atsbt/api/errorkinds"
	"github.com/ats-engineering/atsbt/api/eventbus"
	"github.com/ats-engineering/atsbt/commands"
)

// Pair attempts to pair with the addressed peer. The command runs with the
// extended pairing timeout, since the remote device may wait on user
// confirmation.
//
// A response carrying OK or PAIR_OK means paired; ERROR means failed. Any
// other non-empty response is an ambiguous acknowledgment: under the
// optimistic-acknowledgment policy (Configuration.OptimisticAck) the peer is
// recorded as paired anyway and the result is marked Assumed. With the
// policy disabled, ambiguity counts as failure.
func (s *Session) Pair(address bluetooth.Address) (bluetooth.PairResult, error) {
	if !address.IsValid() {
		return bluetooth.PairResult{}, errorkinds.ErrInvalidAddress
	}

	raw, err := s.send(commands.Pair(address).WithTimeout(s.cfg.PairTimeout))
	if err != nil {
		return bluetooth.PairResult{}, err
	}

	result := bluetooth.PairResult{Raw: raw}
	switch {
	case strings.Contains(raw, commands.MarkerOK):
		result.Paired = true

	case strings.Contains(raw, commands.MarkerError):

	case raw != "" && s.cfg.OptimisticAck:
		result.Paired = true
		result.Assumed = true
	}

	if result.Paired {
		s.pairedAddr = address
	}

	log.Debug().Str("address", address.String()).
		Bool("paired", result.Paired).Bool("assumed", result.Assumed).
		Msg("pairing resolved")

	eventbus.Publish(bluetooth.EventPairing, bluetooth.PairingEventData{
		Address: address,
		Paired:  result.Paired,
		Assumed: result.Assumed,
	})

	return result, nil
}

// PairedAddress returns the address most recently recorded as paired by this
// session, or the empty address.
func (s *Session) PairedAddress() bluetooth.Address {
	return s.pairedAddr
}
