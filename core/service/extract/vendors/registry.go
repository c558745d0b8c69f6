package vendors

// NewDefaultRegistry builds the registry with every known travel vendor.
// Order matters: aggregators first, then airlines, so an Expedia booking
// that mentions the operating carrier resolves to Expedia.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	// Travel agencies / aggregators
	r.Register(NewCapitalOneParser())
	r.Register(NewExpediaParser())

	// Airlines
	r.Register(NewDeltaParser())
	r.Register(NewUnitedParser())
	r.Register(NewAmericanParser())
	r.Register(NewSouthwestParser())

	return r
}
