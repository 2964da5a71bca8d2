// lora-send: Transmit LoRa packets through an SX1278 module
//
// The radio must be wired to an SPI bus plus three GPIO lines: chip
// select (NSS), RESET, and DIO0. The SPI device is opened without
// kernel chip-select handling; the driver frames transactions itself.
//
// Examples:
//
//	# Send an ASCII payload with the built-in defaults (433 MHz SF7)
//	./lora-send -data "Hello World"
//
//	# Send hex data using a saved configuration
//	./lora-send -c etc/radios/node1.json -hex "DEADBEEF"
//
//	# Send with a built-in profile, repeated 10 times, 1s apart
//	./lora-send -p 868-long-range -data "ping" -repeat 10 -interval 1s
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

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

func main() {
	spiDev := flag.String("spi", "/dev/spidev0.0", "SPI device")
	nssName := flag.String("nss", "GPIO8", "Chip select pin name")
	resetName := flag.String("reset", "GPIO22", "Reset pin name")
	dio0Name := flag.String("dio0", "GPIO25", "DIO0 interrupt pin name")
	configPath := flag.String("c", "", "Configuration file path")
	profileName := flag.String("p", "", "Built-in profile name")
	dataStr := flag.String("data", "", "Data to send (ASCII string)")
	hexStr := flag.String("hex", "", "Data to send (hex encoded)")
	repeat := flag.Uint("repeat", 0, "Number of times to repeat transmission (0 = once)")
	interval := flag.Duration("interval", 500*time.Millisecond, "Delay between repeated transmissions")
	wait := flag.Duration("wait", 2*time.Second, "How long to wait for TxDone after each transmission")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Parse()

	if *dataStr == "" && *hexStr == "" {
		fmt.Fprintln(os.Stderr, "Error: provide data with -data or -hex")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *dataStr != "" && *hexStr != "" {
		fmt.Fprintln(os.Stderr, "Error: -data and -hex are mutually exclusive")
		os.Exit(1)
	}

	payload := []byte(*dataStr)
	if *hexStr != "" {
		var err error
		payload, err = hex.DecodeString(*hexStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid hex data: %v\n", err)
			os.Exit(1)
		}
	}

	radio, cleanup, err := openRadio(*spiDev, *nssName, *resetName, *dio0Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := applySettings(radio, *configPath, *profileName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Radio: %s\n", config.FromRadio(radio).Describe())
	}

	if err := radio.Reset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: reset failed: %v\n", err)
		os.Exit(1)
	}
	if err := radio.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init failed: %v\n", err)
		os.Exit(1)
	}

	total := int(*repeat) + 1
	for i := 0; i < total; i++ {
		if err := radio.Transmit(payload); err != nil {
			fmt.Fprintf(os.Stderr, "Error: transmit failed: %v\n", err)
			os.Exit(1)
		}

		if radio.DIO0 != nil {
			if !radio.DIO0.WaitForEdge(*wait) {
				fmt.Fprintln(os.Stderr, "Warning: no TxDone edge before timeout")
			}
		} else {
			time.Sleep(*wait)
		}

		if *verbose {
			fmt.Printf("Sent %d bytes (%d/%d)\n", len(payload), i+1, total)
		}
		if i < total-1 {
			time.Sleep(*interval)
		}
	}

	fmt.Printf("Done: %d transmission(s) of %d bytes\n", total, len(payload))
}

// openRadio initializes periph, opens the SPI port without kernel chip
// select, resolves the GPIO lines, and attaches everything to a Radio.
func openRadio(spiDev, nssName, resetName, dio0Name string) (*sx1278.Radio, func(), error) {
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

	var dio0 gpio.PinIn
	if dio0Name != "" {
		dio0 = gpioreg.ByName(dio0Name)
		if dio0 == nil {
			port.Close()
			return nil, nil, fmt.Errorf("DIO0 pin not found: %s", dio0Name)
		}
		if err := dio0.In(gpio.PullDown, gpio.RisingEdge); err != nil {
			port.Close()
			return nil, nil, fmt.Errorf("failed to configure DIO0: %w", err)
		}
	}

	// chip select idles high
	if err := nss.Out(gpio.High); err != nil {
		port.Close()
		return nil, nil, fmt.Errorf("failed to release chip select: %w", err)
	}

	radio := sx1278.NewPeriph(conn, nss, reset, dio0)
	return radio, func() { port.Close() }, nil
}

// applySettings loads a config file or a built-in profile into the radio
func applySettings(radio *sx1278.Radio, configPath, profileName string) error {
	if configPath != "" && profileName != "" {
		return fmt.Errorf("-c and -p are mutually exclusive")
	}
	if configPath != "" {
		settings, err := config.LoadFromFile(configPath)
		if err != nil {
			return err
		}
		settings.ApplyToRadio(radio)
	}
	if profileName != "" {
		profile, err := profiles.FindByName(profileName)
		if err != nil {
			return err
		}
		profile.Apply(radio)
	}
	return nil
}
