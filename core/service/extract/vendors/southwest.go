package vendors

import "tripscan/core/domain"

// SouthwestParser handles Southwest Airlines confirmation emails.
type SouthwestParser struct {
	baseParser
}

func NewSouthwestParser() *SouthwestParser {
	return &SouthwestParser{
		baseParser: newBaseParser(domain.VendorSouthwest, `(?i)southwest(?: air ?lines)?|southwest\.com`),
	}
}
