package vendors

import "tripscan/core/domain"

// UnitedParser handles United Airlines confirmation emails.
type UnitedParser struct {
	baseParser
}

func NewUnitedParser() *UnitedParser {
	return &UnitedParser{
		baseParser: newBaseParser(domain.VendorUnited, `(?i)united(?: air ?lines)?|united\.com`),
	}
}
