package vendors

import "tripscan/core/domain"

// DeltaParser handles Delta Air Lines confirmation emails.
type DeltaParser struct {
	baseParser
}

func NewDeltaParser() *DeltaParser {
	return &DeltaParser{
		baseParser: newBaseParser(domain.VendorDelta, `(?i)delta(?: air ?lines)?|delta\.com`),
	}
}
