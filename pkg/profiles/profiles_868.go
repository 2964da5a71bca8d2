package profiles

import "github.com/herlein/golora/pkg/sx1278"

// 868 MHz Band Profiles
// The European SRD band. Duty-cycle limits apply at the regulatory
// level; these profiles only set modulation parameters.

// New868LongRange creates a maximum-range 868 MHz profile
func New868LongRange() *Profile {
	return &Profile{
		Name:            "868-long-range",
		Description:     "868 MHz SF12/BW125kHz/CR4-8 for maximum range",
		FrequencyMHz:    868,
		SpreadingFactor: sx1278.SF12,
		Bandwidth:       sx1278.Bw125kHz,
		CodingRate:      sx1278.Cr4_8,
		PreambleLength:  12,
		Power:           sx1278.Power20dBm,
		OCPMilliamps:    120,
	}
}

// New868Default creates a balanced 868 MHz profile at the bandwidth and
// spreading factor most European LoRa deployments use.
func New868Default() *Profile {
	return &Profile{
		Name:            "868-default",
		Description:     "868 MHz SF9/BW125kHz/CR4-5 general purpose",
		FrequencyMHz:    868,
		SpreadingFactor: sx1278.SF9,
		Bandwidth:       sx1278.Bw125kHz,
		CodingRate:      sx1278.Cr4_5,
		PreambleLength:  8,
		Power:           sx1278.Power17dBm,
		OCPMilliamps:    100,
	}
}

// New868FastShortRange creates a high-throughput 868 MHz profile
func New868FastShortRange() *Profile {
	return &Profile{
		Name:            "868-fast-short",
		Description:     "868 MHz SF7/BW250kHz/CR4-5 for short fast links",
		FrequencyMHz:    868,
		SpreadingFactor: sx1278.SF7,
		Bandwidth:       sx1278.Bw250kHz,
		CodingRate:      sx1278.Cr4_5,
		PreambleLength:  8,
		Power:           sx1278.Power14dBm,
		OCPMilliamps:    100,
	}
}

// Band868 returns all built-in 868 MHz profiles
func Band868() []*Profile {
	return []*Profile{
		New868LongRange(),
		New868Default(),
		New868FastShortRange(),
	}
}
