// Package profiles provides pre-defined LoRa configuration profiles for the
// SX1278. Each profile represents a specific combination of frequency,
// spreading factor, bandwidth, coding rate, and power optimized for a
// particular trade-off between range and data rate.
package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/herlein/golora/pkg/sx1278"
)

// Profile represents a complete LoRa modulation profile
type Profile struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	FrequencyMHz    uint32                 `json:"frequency_mhz"`
	SpreadingFactor sx1278.SpreadingFactor `json:"spreading_factor"`
	Bandwidth       sx1278.Bandwidth       `json:"bandwidth"`
	CodingRate      sx1278.CodingRate      `json:"coding_rate"`
	PreambleLength  uint16                 `json:"preamble_length"`
	Power           uint8                  `json:"power"`
	OCPMilliamps    uint8                  `json:"ocp_milliamps"`
}

// Apply copies the profile into a radio's configuration fields. The
// parameters take effect when Init pushes them to the chip; for a radio
// that is already initialized, follow with the individual setters.
func (p *Profile) Apply(r *sx1278.Radio) {
	r.Frequency = p.FrequencyMHz
	r.SpreadingFactor = p.SpreadingFactor
	r.Bandwidth = p.Bandwidth
	r.CodingRate = p.CodingRate
	r.PreambleLength = p.PreambleLength
	r.Power = p.Power
	r.OCPMilliamps = p.OCPMilliamps
}

// DataRateBps estimates the equivalent bit rate of the profile using the
// LoRa relation SF * BW / 2^SF scaled by the coding rate 4/(4+CR).
func (p *Profile) DataRateBps() float64 {
	bw := float64(p.Bandwidth.Hz())
	sf := float64(p.SpreadingFactor)
	denominator := float64(uint32(1) << p.SpreadingFactor)
	cr := 4.0 / (4.0 + float64(p.CodingRate))
	return sf * bw / denominator * cr
}

// All returns every built-in profile, grouped by band
func All() []*Profile {
	profiles := []*Profile{}
	profiles = append(profiles, Band433()...)
	profiles = append(profiles, Band868()...)
	profiles = append(profiles, Band915()...)
	return profiles
}

// FindByName looks up a built-in profile by its name
func FindByName(name string) (*Profile, error) {
	for _, p := range All() {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile not found: %s", name)
}

// SaveToFile writes a profile as indented JSON
func SaveToFile(p *Profile, path string) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// LoadFromFile reads a profile from a JSON file
func LoadFromFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &p, nil
}
