package profiles

import "github.com/herlein/golora/pkg/sx1278"

// 433 MHz Band Profiles
// The 433 MHz ISM band, commonly used for sensor links and telemetry in
// region 1.

// New433LongRange creates a maximum-range 433 MHz profile: SF12 over a
// narrow channel with the strongest error correction. Slowest data rate.
func New433LongRange() *Profile {
	return &Profile{
		Name:            "433-long-range",
		Description:     "433 MHz SF12/BW62.5kHz/CR4-8 for maximum range",
		FrequencyMHz:    433,
		SpreadingFactor: sx1278.SF12,
		Bandwidth:       sx1278.Bw62_5kHz,
		CodingRate:      sx1278.Cr4_8,
		PreambleLength:  12,
		Power:           sx1278.Power20dBm,
		OCPMilliamps:    120,
	}
}

// New433Default creates the stock 433 MHz profile matching the driver
// defaults: SF7 over 250 kHz with 4/5 coding.
func New433Default() *Profile {
	return &Profile{
		Name:            "433-default",
		Description:     "433 MHz SF7/BW250kHz/CR4-5 general purpose",
		FrequencyMHz:    433,
		SpreadingFactor: sx1278.SF7,
		Bandwidth:       sx1278.Bw250kHz,
		CodingRate:      sx1278.Cr4_5,
		PreambleLength:  8,
		Power:           sx1278.Power20dBm,
		OCPMilliamps:    100,
	}
}

// New433FastShortRange creates a high-throughput 433 MHz profile for
// short links: SF7 over the widest channel at reduced power.
func New433FastShortRange() *Profile {
	return &Profile{
		Name:            "433-fast-short",
		Description:     "433 MHz SF7/BW500kHz/CR4-5 for short fast links",
		FrequencyMHz:    433,
		SpreadingFactor: sx1278.SF7,
		Bandwidth:       sx1278.Bw500kHz,
		CodingRate:      sx1278.Cr4_5,
		PreambleLength:  8,
		Power:           sx1278.Power14dBm,
		OCPMilliamps:    100,
	}
}

// Band433 returns all built-in 433 MHz profiles
func Band433() []*Profile {
	return []*Profile{
		New433LongRange(),
		New433Default(),
		New433FastShortRange(),
	}
}
