package commands

import "strings"

// Terminal markers: substrings in module output that signal a command's
// response is complete.
const (
	MarkerOK      = "OK"
	MarkerError   = "ERROR"
	MarkerPending = "PENDING"
	MarkerAck     = "ACK"

	// Operation-specific success markers.
	MarkerPairOK = "PAIR_OK"
	MarkerOpenOK = "OPEN_OK"
)

// Inquiry output markers. MarkerInquiryAck and the MarkerInquiryStatus
// prefix share a substring with MarkerInquiryHit and must be excluded
// explicitly when classifying inquiry result lines.
const (
	MarkerInquiryHit    = "INQUIRY"
	MarkerInquiryAck    = "INQU_OK"
	MarkerInquiryStatus = "INQUIRY_"
)

// DefaultMarkers returns the terminal marker set for ordinary commands.
func DefaultMarkers() []string {
	return []string{MarkerOK, MarkerError, MarkerPending, MarkerAck}
}

// OpenMarkers returns the terminal marker set for profile-open commands,
// which conclude with an explicit OPEN_OK rather than a bare OK.
func OpenMarkers() []string {
	return []string{MarkerOpenOK, MarkerError}
}

// ContainsMarker reports whether the line carries any of the given markers.
func ContainsMarker(line string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(line, m) {
			return true
		}
	}

	return false
}
