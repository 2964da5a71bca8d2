// Package config persists SX1278 radio settings as JSON files and moves
// them between files and live radio handles.
package config

import (
	"fmt"
	"time"

	"github.com/herlein/golora/pkg/sx1278"
)

// RadioSettings holds a snapshot of one radio's configuration
type RadioSettings struct {
	FrequencyMHz    uint32                 `json:"frequency_mhz"`
	SpreadingFactor sx1278.SpreadingFactor `json:"spreading_factor"`
	Bandwidth       sx1278.Bandwidth       `json:"bandwidth"`
	CodingRate      sx1278.CodingRate      `json:"coding_rate"`
	PreambleLength  uint16                 `json:"preamble_length"`
	Power           uint8                  `json:"power"`
	OCPMilliamps    uint8                  `json:"ocp_milliamps"`
	Timestamp       time.Time              `json:"timestamp"`
}

// FromRadio captures the current configuration of a radio handle
func FromRadio(r *sx1278.Radio) *RadioSettings {
	return &RadioSettings{
		FrequencyMHz:    r.Frequency,
		SpreadingFactor: r.SpreadingFactor,
		Bandwidth:       r.Bandwidth,
		CodingRate:      r.CodingRate,
		PreambleLength:  r.PreambleLength,
		Power:           r.Power,
		OCPMilliamps:    r.OCPMilliamps,
		Timestamp:       time.Now(),
	}
}

// ApplyToRadio copies the settings into a radio's configuration fields.
// The parameters reach the chip when Init runs; for an initialized
// radio, use ApplyLive instead.
func (s *RadioSettings) ApplyToRadio(r *sx1278.Radio) {
	r.Frequency = s.FrequencyMHz
	r.SpreadingFactor = s.SpreadingFactor
	r.Bandwidth = s.Bandwidth
	r.CodingRate = s.CodingRate
	r.PreambleLength = s.PreambleLength
	r.Power = s.Power
	r.OCPMilliamps = s.OCPMilliamps
}

// ApplyLive pushes the settings to an already-initialized radio through
// the individual setters, register by register.
func (s *RadioSettings) ApplyLive(r *sx1278.Radio) error {
	if err := r.SetFrequency(s.FrequencyMHz); err != nil {
		return fmt.Errorf("failed to apply frequency: %w", err)
	}
	if err := r.SetPower(s.Power); err != nil {
		return fmt.Errorf("failed to apply power: %w", err)
	}
	if err := r.SetOCP(s.OCPMilliamps); err != nil {
		return fmt.Errorf("failed to apply OCP limit: %w", err)
	}
	if err := r.SetSpreadingFactor(s.SpreadingFactor); err != nil {
		return fmt.Errorf("failed to apply spreading factor: %w", err)
	}
	if err := r.SetModemConfig(s.Bandwidth, s.CodingRate); err != nil {
		return fmt.Errorf("failed to apply modem config: %w", err)
	}
	if err := r.SetPreambleLength(s.PreambleLength); err != nil {
		return fmt.Errorf("failed to apply preamble length: %w", err)
	}
	return nil
}

// Validate checks that every field falls within the chip's supported
// ranges. Settings loaded from a file are validated before use so a
// hand-edited value outside the register encoding never reaches a radio.
func (s *RadioSettings) Validate() error {
	if s.FrequencyMHz == 0 {
		return fmt.Errorf("frequency must be set")
	}
	if s.SpreadingFactor < sx1278.SF7 || s.SpreadingFactor > sx1278.SF12 {
		return fmt.Errorf("spreading factor %d out of range [7,12]", s.SpreadingFactor)
	}
	if s.Bandwidth > sx1278.Bw500kHz {
		return fmt.Errorf("bandwidth index %d out of range [0,9]", s.Bandwidth)
	}
	if s.CodingRate < sx1278.Cr4_5 || s.CodingRate > sx1278.Cr4_8 {
		return fmt.Errorf("coding rate index %d out of range [1,4]", s.CodingRate)
	}
	if s.OCPMilliamps < sx1278.OcpMinMilliamps || s.OCPMilliamps > sx1278.OcpMaxMilliamps {
		return fmt.Errorf("OCP limit %d mA out of range [45,240]", s.OCPMilliamps)
	}
	if s.PreambleLength == 0 {
		return fmt.Errorf("preamble length must be at least 1")
	}
	return nil
}

// Describe returns a one-line human-readable summary of the settings
func (s *RadioSettings) Describe() string {
	return fmt.Sprintf("%d MHz SF%d BW%d CR4/%d preamble=%d power=0x%02X ocp=%dmA",
		s.FrequencyMHz, s.SpreadingFactor, s.Bandwidth, 4+int(s.CodingRate),
		s.PreambleLength, s.Power, s.OCPMilliamps)
}
