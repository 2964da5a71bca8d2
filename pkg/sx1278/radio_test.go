package sx1278

import (
	"errors"
	"fmt"
	"testing"

	"go.viam.com/test"
)

func TestSetModeEncoding(t *testing.T) {
	for _, tc := range []struct {
		mode Mode
		code uint8
	}{
		{ModeSleep, 0x00},
		{ModeStandby, 0x01},
		{ModeTx, 0x03},
		{ModeRxContinuous, 0x05},
	} {
		t.Run(tc.mode.String(), func(t *testing.T) {
			chip := newFakeChip()
			r := New()
			chip.attach(r)

			// unrelated high bits must survive the mode change
			chip.regs[RegOpMode] = 0x88

			err := r.SetMode(tc.mode)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, chip.regs[RegOpMode], test.ShouldEqual, 0x88|tc.code)
			test.That(t, r.Mode(), test.ShouldEqual, tc.mode)
		})
	}
}

func TestSetModeTxMapsDioFirst(t *testing.T) {
	chip := newFakeChip()
	r := New()
	chip.attach(r)

	err := r.SetMode(ModeTx)
	test.That(t, err, test.ShouldBeNil)

	dioIdx := chip.writeIndex(RegDioMapping1, DioMappingTxDone)
	modeIdx := chip.writeIndex(RegOpMode, 0x03)
	test.That(t, dioIdx, test.ShouldNotEqual, -1)
	test.That(t, modeIdx, test.ShouldNotEqual, -1)
	test.That(t, dioIdx, test.ShouldBeLessThan, modeIdx)
}

func TestSetModeRxMapsDioFirst(t *testing.T) {
	chip := newFakeChip()
	r := New()
	chip.attach(r)

	err := r.SetMode(ModeRxContinuous)
	test.That(t, err, test.ShouldBeNil)

	dioIdx := chip.writeIndex(RegDioMapping1, DioMappingRxDone)
	modeIdx := chip.writeIndex(RegOpMode, 0x05)
	test.That(t, dioIdx, test.ShouldNotEqual, -1)
	test.That(t, modeIdx, test.ShouldNotEqual, -1)
	test.That(t, dioIdx, test.ShouldBeLessThan, modeIdx)
}

func TestSetFrequencyEncoding(t *testing.T) {
	for _, mhz := range []uint32{433, 868, 915} {
		t.Run(fmt.Sprintf("%dMHz", mhz), func(t *testing.T) {
			chip := newFakeChip()
			r := New()
			chip.attach(r)

			err := r.SetFrequency(mhz)
			test.That(t, err, test.ShouldBeNil)

			word := uint32(chip.regs[RegFrMsb])<<16 |
				uint32(chip.regs[RegFrMid])<<8 |
				uint32(chip.regs[RegFrLsb])
			test.That(t, word, test.ShouldEqual, (mhz*524288)>>5)
			test.That(t, r.Frequency, test.ShouldEqual, mhz)
		})
	}
}

func TestSetSpreadingFactorPreservesLowNibble(t *testing.T) {
	for sf := SF7; sf <= SF12; sf++ {
		t.Run(fmt.Sprintf("SF%d", sf), func(t *testing.T) {
			chip := newFakeChip()
			r := New()
			chip.attach(r)

			chip.regs[RegModemConfig2] = 0x0B // live CRC/timeout bits

			err := r.SetSpreadingFactor(sf)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, chip.regs[RegModemConfig2], test.ShouldEqual, uint8(sf)<<4|0x0B)
		})
	}
}

func TestSetSpreadingFactorClamps(t *testing.T) {
	for _, tc := range []struct {
		in   SpreadingFactor
		want SpreadingFactor
	}{
		{3, SF7},
		{6, SF7},
		{13, SF12},
		{15, SF12},
	} {
		t.Run(fmt.Sprintf("SF%d", tc.in), func(t *testing.T) {
			chip := newFakeChip()
			r := New()
			chip.attach(r)

			err := r.SetSpreadingFactor(tc.in)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, chip.regs[RegModemConfig2]>>4, test.ShouldEqual, uint8(tc.want))
			test.That(t, r.SpreadingFactor, test.ShouldEqual, tc.want)
		})
	}
}

func TestSetOCPTrim(t *testing.T) {
	for _, tc := range []struct {
		milliamps uint8
		trim      uint8
	}{
		{45, 0},
		{50, 1},
		{100, 11},
		{120, 15},
		{121, 15},
		{130, 16},
		{226, 25},
		{240, 27},
		// clamped inputs
		{40, 0},
		{250, 27},
	} {
		t.Run(fmt.Sprintf("%dmA", tc.milliamps), func(t *testing.T) {
			chip := newFakeChip()
			r := New()
			chip.attach(r)

			err := r.SetOCP(tc.milliamps)
			test.That(t, err, test.ShouldBeNil)
			// enable bit always set alongside the trim
			test.That(t, chip.regs[RegOcp], test.ShouldEqual, tc.trim|uint8(1<<5))
		})
	}
}

func TestSetModemConfigPacking(t *testing.T) {
	chip := newFakeChip()
	r := New()
	chip.attach(r)

	err := r.SetModemConfig(Bw125kHz, Cr4_8)
	test.That(t, err, test.ShouldBeNil)
	// bw<<4 | cr<<1 | explicit header (0)
	test.That(t, chip.regs[RegModemConfig1], test.ShouldEqual, uint8(7<<4|4<<1))
}

func TestSetPreambleLength(t *testing.T) {
	chip := newFakeChip()
	r := New()
	chip.attach(r)

	err := r.SetPreambleLength(0x1234)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, chip.regs[RegPreambleMsb], test.ShouldEqual, uint8(0x12))
	test.That(t, chip.regs[RegPreambleLsb], test.ShouldEqual, uint8(0x34))
}

func TestRSSI(t *testing.T) {
	chip := newFakeChip()
	r := New()
	chip.attach(r)

	chip.regs[RegPktRssiValue] = 80
	rssi, err := r.RSSI()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rssi, test.ShouldEqual, -84)
}

func TestInitConfiguresChip(t *testing.T) {
	chip := newFakeChip()
	r := New()
	chip.attach(r)

	err := r.Init()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Mode(), test.ShouldEqual, ModeStandby)

	// LoRa long-range bit on, standby mode code in the low bits
	test.That(t, chip.regs[RegOpMode], test.ShouldEqual, uint8(0x81))
	// defaults pushed to the chip
	test.That(t, chip.regs[RegPaConfig], test.ShouldEqual, uint8(Power20dBm))
	test.That(t, chip.regs[RegOcp], test.ShouldEqual, uint8(11|1<<5))
	test.That(t, chip.regs[RegLna], test.ShouldEqual, uint8(LnaBoostGain))
	test.That(t, chip.regs[RegSymbTimeoutLsb], test.ShouldEqual, uint8(0xFF))
	// SF7 in the high nibble over the CRC/timeout bits set just before
	test.That(t, chip.regs[RegModemConfig2], test.ShouldEqual, uint8(7<<4|0x07))
	// 250 kHz, 4/5, explicit header
	test.That(t, chip.regs[RegModemConfig1], test.ShouldEqual, uint8(8<<4|1<<1))
	test.That(t, chip.regs[RegPreambleMsb], test.ShouldEqual, uint8(0x00))
	test.That(t, chip.regs[RegPreambleLsb], test.ShouldEqual, uint8(0x08))
	// default DIO mapping left reporting RxDone
	test.That(t, chip.regs[RegDioMapping1], test.ShouldEqual, uint8(0x3F))
	// 433 MHz synthesizer word
	word := uint32(chip.regs[RegFrMsb])<<16 |
		uint32(chip.regs[RegFrMid])<<8 |
		uint32(chip.regs[RegFrLsb])
	test.That(t, word, test.ShouldEqual, uint32(433*524288)>>5)

	test.That(t, chip.framingErrs, test.ShouldBeEmpty)
}

func TestInitCrcBitsAppliedBeforeSpreadingFactor(t *testing.T) {
	chip := newFakeChip()
	r := New()
	chip.attach(r)

	err := r.Init()
	test.That(t, err, test.ShouldBeNil)

	crcIdx := chip.writeIndex(RegModemConfig2, 0x07)
	sfIdx := chip.writeIndex(RegModemConfig2, 7<<4|0x07)
	test.That(t, crcIdx, test.ShouldNotEqual, -1)
	test.That(t, sfIdx, test.ShouldNotEqual, -1)
	test.That(t, crcIdx, test.ShouldBeLessThan, sfIdx)
}

func TestInitVersionMismatch(t *testing.T) {
	for _, version := range []uint8{0x00, 0xFF, 0x11, 0x22} {
		t.Run(fmt.Sprintf("0x%02X", version), func(t *testing.T) {
			chip := newFakeChip()
			chip.regs[RegVersion] = version
			r := New()
			chip.attach(r)

			err := r.Init()
			test.That(t, errors.Is(err, ErrChipNotFound), test.ShouldBeTrue)
		})
	}
}
