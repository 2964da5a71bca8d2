// lora-info: Probe an SX1278 module and show its configuration
//
// Initializes the radio, verifies the chip identity, and prints the
// active settings. Can also dump the named LoRa registers and save the
// settings to a JSON file for later use with lora-send/lora-recv.
//
// Examples:
//
//	# Probe and show settings
//	./lora-info
//
//	# Probe with a profile applied first and dump registers
//	./lora-info -p 915-default -dump
//
//	# Save the active settings
//	./lora-info -save etc/radios/node1.json
package main

import (
	"flag"
	"fmt"
	"os"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/herlein/golora/pkg/config"
	"github.com/herlein/golora/pkg/profiles"
	"github.com/herlein/golora/pkg/sx1278"
)

// namedRegisters is the dump order: every LoRa register the driver touches
var namedRegisters = []struct {
	name string
	addr uint8
}{
	{"RegOpMode", sx1278.RegOpMode},
	{"RegFrMsb", sx1278.RegFrMsb},
	{"RegFrMid", sx1278.RegFrMid},
	{"RegFrLsb", sx1278.RegFrLsb},
	{"RegPaConfig", sx1278.RegPaConfig},
	{"RegOcp", sx1278.RegOcp},
	{"RegLna", sx1278.RegLna},
	{"RegFifoAddrPtr", sx1278.RegFifoAddrPtr},
	{"RegFifoTxBaseAddr", sx1278.RegFifoTxBaseAddr},
	{"RegFifoRxBaseAddr", sx1278.RegFifoRxBaseAddr},
	{"RegIrqFlags", sx1278.RegIrqFlags},
	{"RegModemConfig1", sx1278.RegModemConfig1},
	{"RegModemConfig2", sx1278.RegModemConfig2},
	{"RegSymbTimeoutLsb", sx1278.RegSymbTimeoutLsb},
	{"RegPreambleMsb", sx1278.RegPreambleMsb},
	{"RegPreambleLsb", sx1278.RegPreambleLsb},
	{"RegDioMapping1", sx1278.RegDioMapping1},
	{"RegVersion", sx1278.RegVersion},
}

func main() {
	spiDev := flag.String("spi", "/dev/spidev0.0", "SPI device")
	nssName := flag.String("nss", "GPIO8", "Chip select pin name")
	resetName := flag.String("reset", "GPIO22", "Reset pin name")
	profileName := flag.String("p", "", "Built-in profile name to apply before probing")
	dump := flag.Bool("dump", false, "Dump named LoRa registers")
	savePath := flag.String("save", "", "Save active settings to a JSON file")
	listProfiles := flag.Bool("profiles", false, "List built-in profiles and exit")

	flag.Parse()

	if *listProfiles {
		for _, p := range profiles.All() {
			fmt.Printf("%-18s %s (%.0f bps)\n", p.Name, p.Description, p.DataRateBps())
		}
		return
	}

	radio, cleanup, err := openRadio(*spiDev, *nssName, *resetName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if *profileName != "" {
		profile, err := profiles.FindByName(*profileName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		profile.Apply(radio)
	}

	if err := radio.Reset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: reset failed: %v\n", err)
		os.Exit(1)
	}
	if err := radio.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("SX1278 found (version 0x%02X)\n", sx1278.VersionSignature)
	fmt.Printf("Mode:     %s\n", radio.Mode())
	fmt.Printf("Settings: %s\n", config.FromRadio(radio).Describe())

	if *dump {
		fmt.Println("\nRegisters:")
		for _, reg := range namedRegisters {
			value, err := radio.ReadRegister(reg.addr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", reg.name, err)
				os.Exit(1)
			}
			fmt.Printf("  %-18s (0x%02X) = 0x%02X\n", reg.name, reg.addr, value)
		}
	}

	if *savePath != "" {
		if err := config.SaveToFile(config.FromRadio(radio), *savePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved settings to %s\n", *savePath)
	}
}

func openRadio(spiDev, nssName, resetName string) (*sx1278.Radio, func(), error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	port, err := spireg.Open(spiDev)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open SPI device %s: %w", spiDev, err)
	}

	conn, err := port.Connect(8*physic.MegaHertz, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		port.Close()
		return nil, nil, fmt.Errorf("failed to connect SPI: %w", err)
	}

	nss := gpioreg.ByName(nssName)
	if nss == nil {
		port.Close()
		return nil, nil, fmt.Errorf("NSS pin not found: %s", nssName)
	}
	reset := gpioreg.ByName(resetName)
	if reset == nil {
		port.Close()
		return nil, nil, fmt.Errorf("reset pin not found: %s", resetName)
	}

	if err := nss.Out(gpio.High); err != nil {
		port.Close()
		return nil, nil, fmt.Errorf("failed to release chip select: %w", err)
	}

	radio := sx1278.NewPeriph(conn, nss, reset, nil)
	return radio, func() { port.Close() }, nil
}
