// Command atsbt-connect walks through connecting a Bluetooth audio device
// (headphones, speaker) to an ATS-BT module: inquiry scan, pairing, A2DP and
// AVRCP channel establishment, then interactive media control.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/ats-engineering/atsbt"
	"github.com/ats-engineering/atsbt/api/bluetooth"
	"github.com/ats-engineering/atsbt/api/config"
	"github.com/ats-engineering/atsbt/commands"
)

var stdin = bufio.NewScanner(os.Stdin)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		portName = pflag.StringP("port", "p", "", "serial port (auto-detect if not specified)")
		duration = pflag.IntP("scan-duration", "d", 5, "inquiry scan duration in seconds")
		verbose  = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	banner("ATS-BT A2DP/AVRCP Connection Tool")

	cfg := config.New()
	cfg.PortName = *portName

	session := atsbt.NewSession(cfg)
	if err := session.Connect(); err != nil {
		fmt.Fprintln(os.Stderr, "\nFailed to connect to ATS-BT device:", err)
		fmt.Fprintln(os.Stderr, "Use 'atsbt --list' to check available ports.")
		return 1
	}
	defer session.Disconnect()

	fmt.Printf("Connected to ATS-BT at %s\n", session.Port())
	if mac, err := session.LocalAddress(); err == nil {
		fmt.Printf("Device MAC: %s\n", mac)
	}

	step("STEP 1: Prepare Your Audio Device")
	fmt.Println("Put your Bluetooth headphones/speaker into PAIRING MODE.")
	fmt.Println("(Usually: hold power button until LED flashes rapidly)")
	fmt.Println()
	prompt("Press ENTER when your device is in pairing mode...")

	step("STEP 2: Scanning for Devices")
	devices := scan(session, *duration)
	if len(devices) == 0 {
		fmt.Println("\nNo devices found. Make sure your device is in pairing mode.")
		if answer := prompt("Try scanning again? (y/n): "); strings.EqualFold(answer, "y") {
			devices = scan(session, *duration+3)
		}
	}
	if len(devices) == 0 {
		fmt.Println("No devices found. Exiting.")
		return 1
	}

	printDevices(devices)

	step("STEP 3: Select Device")
	selected, ok := selectDevice(devices)
	if !ok {
		fmt.Println("Cancelled.")
		return 0
	}
	fmt.Printf("\nSelected: %s (%s)\n", selected.Name, selected.Address)

	step("STEP 4: Pairing")
	fmt.Printf("Pairing with %s...\n", selected.Address)
	pairing, err := session.Pair(selected.Address)
	if err != nil {
		fmt.Println("Pairing error:", err)
		return 1
	}
	switch {
	case pairing.Paired && !pairing.Assumed:
		fmt.Println("Pairing successful!")
	case pairing.Paired:
		fmt.Printf("Pairing response: %s\n", pairing.Raw)
	default:
		fmt.Printf("Pairing failed: %s\n", pairing.Raw)
		fmt.Println("Device may need to accept the pairing request.")
		if answer := prompt("Continue anyway? (y/n): "); !strings.EqualFold(answer, "y") {
			return 1
		}
	}

	step("STEP 5: Establishing A2DP Audio Connection")
	a2dp, err := session.OpenProfile(selected.Address, bluetooth.A2DP, 0)
	if err != nil || !a2dp.Opened {
		fmt.Println("Failed to open A2DP connection.")
		return 1
	}
	fmt.Printf("A2DP connected! Link ID: %s\n", a2dp.Link.LinkID)

	step("STEP 6: Establishing AVRCP Control Channel")
	avrcp, err := session.OpenProfile(selected.Address, bluetooth.AVRCP, 0)
	if err != nil || !avrcp.Opened {
		fmt.Println("Warning: AVRCP connection failed. Media controls may not work.")
	} else {
		fmt.Printf("AVRCP connected! Link ID: %s\n", avrcp.Link.LinkID)
	}

	step("CONNECTION COMPLETE!")
	fmt.Printf("Device: %s\n", selected.Name)
	fmt.Printf("Address: %s\n", selected.Address)
	fmt.Printf("A2DP Link: %s\n", a2dp.Link.LinkID)
	fmt.Printf("AVRCP Link: %s\n", avrcp.Link.LinkID)

	mediaMenu(session)

	fmt.Println("\nDisconnecting...")
	session.CloseLinks()

	fmt.Println("Done.")
	return 0
}

func scan(session *atsbt.Session, seconds int) []bluetooth.DiscoveredDevice {
	fmt.Printf("\nScanning for Bluetooth devices (%d seconds)...\n", seconds)
	fmt.Println("Make sure your audio device is in pairing mode!")

	devices, err := session.Scan(time.Duration(seconds) * time.Second)
	if err != nil {
		fmt.Println("Scan error:", err)
		return nil
	}

	return devices
}

func printDevices(devices []bluetooth.DiscoveredDevice) {
	fmt.Println("\nDiscovered Devices:")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("%-4s %-14s %-6s %s\n", "#", "Address", "RSSI", "Name")
	fmt.Println(strings.Repeat("-", 60))
	for i, dev := range devices {
		rssi := "N/A"
		if dev.RSSI != nil {
			rssi = strconv.Itoa(*dev.RSSI) + "dB"
		}
		fmt.Printf("%-4d %-14s %-6s %s\n", i+1, dev.Address, rssi, dev.Name)
	}
	fmt.Println(strings.Repeat("-", 60))
}

func selectDevice(devices []bluetooth.DiscoveredDevice) (bluetooth.DiscoveredDevice, bool) {
	for {
		answer := prompt("\nEnter device number to connect (or 'q' to quit): ")
		if strings.EqualFold(answer, "q") {
			return bluetooth.DiscoveredDevice{}, false
		}

		num, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Println("Invalid input. Enter a number or 'q' to quit.")
			continue
		}
		if num < 1 || num > len(devices) {
			fmt.Printf("Please enter a number between 1 and %d\n", len(devices))
			continue
		}

		return devices[num-1], true
	}
}

func mediaMenu(session *atsbt.Session) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("Media Control")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("Commands:")
	fmt.Println("  p  - Play")
	fmt.Println("  s  - Pause/Stop")
	fmt.Println("  v+ - Volume up")
	fmt.Println("  v- - Volume down")
	fmt.Println("  q  - Quit")
	fmt.Println()

	player := session.MediaPlayer()
	volume := 64

	for {
		cmd := strings.ToLower(prompt("media> "))

		switch cmd {
		case "q":
			return

		case "p":
			printResponse(player.Play())

		case "s":
			printResponse(player.Pause())

		case "v+":
			volume = commands.ClampVolume(volume + 10)
			fmt.Printf("Volume: %d\n", volume)
			printResponse(player.SetVolume(volume))

		case "v-":
			volume = commands.ClampVolume(volume - 10)
			fmt.Printf("Volume: %d\n", volume)
			printResponse(player.SetVolume(volume))

		case "":

		default:
			fmt.Println("Unknown command. Use p/s/v+/v-/q")
		}
	}
}

func printResponse(response string, err error) {
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if response != "" {
		fmt.Println(response)
	}
}

func banner(title string) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", 60))
}

func step(title string) {
	fmt.Println("\n" + strings.Repeat("-", 60))
	fmt.Println(title)
	fmt.Println(strings.Repeat("-", 60))
}

func prompt(text string) string {
	fmt.Print(text)
	if !stdin.Scan() {
		return "q"
	}

	return strings.TrimSpace(stdin.Text())
}
