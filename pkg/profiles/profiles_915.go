package profiles

import "github.com/herlein/golora/pkg/sx1278"

// 915 MHz Band Profiles
// The North American ISM band.

// New915LongRange creates a maximum-range 915 MHz profile
func New915LongRange() *Profile {
	return &Profile{
		Name:            "915-long-range",
		Description:     "915 MHz SF12/BW125kHz/CR4-8 for maximum range",
		FrequencyMHz:    915,
		SpreadingFactor: sx1278.SF12,
		Bandwidth:       sx1278.Bw125kHz,
		CodingRate:      sx1278.Cr4_8,
		PreambleLength:  12,
		Power:           sx1278.Power20dBm,
		OCPMilliamps:    120,
	}
}

// New915Default creates a balanced 915 MHz profile
func New915Default() *Profile {
	return &Profile{
		Name:            "915-default",
		Description:     "915 MHz SF8/BW125kHz/CR4-5 general purpose",
		FrequencyMHz:    915,
		SpreadingFactor: sx1278.SF8,
		Bandwidth:       sx1278.Bw125kHz,
		CodingRate:      sx1278.Cr4_5,
		PreambleLength:  8,
		Power:           sx1278.Power17dBm,
		OCPMilliamps:    100,
	}
}

// New915FastShortRange creates a high-throughput 915 MHz profile
func New915FastShortRange() *Profile {
	return &Profile{
		Name:            "915-fast-short",
		Description:     "915 MHz SF7/BW500kHz/CR4-5 for short fast links",
		FrequencyMHz:    915,
		SpreadingFactor: sx1278.SF7,
		Bandwidth:       sx1278.Bw500kHz,
		CodingRate:      sx1278.Cr4_5,
		PreambleLength:  8,
		Power:           sx1278.Power14dBm,
		OCPMilliamps:    100,
	}
}

// Band915 returns all built-in 915 MHz profiles
func Band915() []*Profile {
	return []*Profile{
		New915LongRange(),
		New915Default(),
		New915FastShortRange(),
	}
}
