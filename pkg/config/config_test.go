package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.viam.com/test"

	"github.com/herlein/golora/pkg/sx1278"
)

func sampleSettings() *RadioSettings {
	return &RadioSettings{
		FrequencyMHz:    868,
		SpreadingFactor: sx1278.SF10,
		Bandwidth:       sx1278.Bw125kHz,
		CodingRate:      sx1278.Cr4_6,
		PreambleLength:  10,
		Power:           sx1278.Power17dBm,
		OCPMilliamps:    130,
		Timestamp:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFromRadioRoundTrip(t *testing.T) {
	r := sx1278.New()
	sampleSettings().ApplyToRadio(r)

	captured := FromRadio(r)
	test.That(t, captured.FrequencyMHz, test.ShouldEqual, uint32(868))
	test.That(t, captured.SpreadingFactor, test.ShouldEqual, sx1278.SF10)
	test.That(t, captured.Bandwidth, test.ShouldEqual, sx1278.Bw125kHz)
	test.That(t, captured.CodingRate, test.ShouldEqual, sx1278.Cr4_6)
	test.That(t, captured.PreambleLength, test.ShouldEqual, uint16(10))
	test.That(t, captured.Power, test.ShouldEqual, uint8(sx1278.Power17dBm))
	test.That(t, captured.OCPMilliamps, test.ShouldEqual, uint8(130))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radios", "node1.json")
	original := sampleSettings()

	err := SaveToFile(original, path)
	test.That(t, err, test.ShouldBeNil)

	loaded, err := LoadFromFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, loaded, test.ShouldResemble, original)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestValidate(t *testing.T) {
	test.That(t, sampleSettings().Validate(), test.ShouldBeNil)

	for _, tc := range []struct {
		name   string
		mutate func(*RadioSettings)
	}{
		{"zero frequency", func(s *RadioSettings) { s.FrequencyMHz = 0 }},
		{"spreading factor too low", func(s *RadioSettings) { s.SpreadingFactor = 6 }},
		{"spreading factor too high", func(s *RadioSettings) { s.SpreadingFactor = 13 }},
		{"bandwidth index too high", func(s *RadioSettings) { s.Bandwidth = 10 }},
		{"coding rate zero", func(s *RadioSettings) { s.CodingRate = 0 }},
		{"coding rate too high", func(s *RadioSettings) { s.CodingRate = 5 }},
		{"OCP below minimum", func(s *RadioSettings) { s.OCPMilliamps = 44 }},
		{"OCP above maximum", func(s *RadioSettings) { s.OCPMilliamps = 241 }},
		{"zero preamble", func(s *RadioSettings) { s.PreambleLength = 0 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := sampleSettings()
			tc.mutate(s)
			test.That(t, s.Validate(), test.ShouldNotBeNil)
		})
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad-sf.json")
	s := sampleSettings()
	s.SpreadingFactor = 20
	data, err := json.Marshal(s)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, os.WriteFile(path, data, 0644), test.ShouldBeNil)

	_, err = LoadFromFile(path)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "spreading factor")
}

func TestSaveRejectsInvalidSettings(t *testing.T) {
	s := sampleSettings()
	s.OCPMilliamps = 0
	err := SaveToFile(s, filepath.Join(t.TempDir(), "bad.json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSaveLeavesNoStagingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node1.json")
	test.That(t, SaveToFile(sampleSettings(), path), test.ShouldBeNil)

	entries, err := os.ReadDir(dir)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].Name(), test.ShouldEqual, "node1.json")
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	test.That(t, os.WriteFile(path, []byte("{not json"), 0644), test.ShouldBeNil)

	_, err := LoadFromFile(path)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDescribe(t *testing.T) {
	s := sampleSettings()
	test.That(t, s.Describe(), test.ShouldContainSubstring, "868 MHz")
	test.That(t, s.Describe(), test.ShouldContainSubstring, "SF10")
	test.That(t, s.Describe(), test.ShouldContainSubstring, "CR4/6")
}

func TestDefaultPath(t *testing.T) {
	test.That(t, DefaultPath("node1"), test.ShouldEqual, filepath.Join("etc", "radios", "node1.json"))
}
