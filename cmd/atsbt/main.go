// Command atsbt controls an ATS-BT Bluetooth module over USB serial: list
// candidate ports, print device information, send raw commands, or drive the
// module interactively.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/ats-engineering/atsbt"
	"github.com/ats-engineering/atsbt/api/config"
	"github.com/ats-engineering/atsbt/serde"
	"github.com/ats-engineering/atsbt/serialport"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		listPorts   = pflag.BoolP("list", "l", false, "list available serial ports")
		portName    = pflag.StringP("port", "p", "", "serial port (auto-detect if not specified)")
		showInfo    = pflag.BoolP("info", "i", false, "show device information")
		rawCmd      = pflag.StringP("cmd", "c", "", "send a command and print the response")
		interactive = pflag.BoolP("interactive", "I", false, "start interactive command mode")
		jsonOut     = pflag.Bool("json", false, "print machine-readable JSON output")
		verbose     = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *listPorts {
		return printPorts(*jsonOut)
	}

	if !*showInfo && *rawCmd == "" && !*interactive {
		pflag.Usage()
		return 0
	}

	cfg := config.New()
	cfg.PortName = *portName

	session := atsbt.NewSession(cfg)
	if err := session.Connect(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr, "Tip: use --list to see available ports, or --port to pick one manually.")
		return 1
	}
	defer session.Disconnect()

	fmt.Printf("Connected to %s\n", session.Port())

	if *showInfo {
		if err := printInfo(session, *jsonOut); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
	}

	if *rawCmd != "" {
		response, err := session.Command(*rawCmd, 0)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
		fmt.Println(response)
	}

	if *interactive {
		interactiveMode(session)
	}

	return 0
}

func printPorts(jsonOut bool) int {
	ports, err := serialport.ListPorts()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	if jsonOut {
		data, err := serde.MarshalJsonIndent(ports)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	if len(ports) == 0 {
		fmt.Println("No serial ports found.")
		return 0
	}

	fmt.Println("\nAvailable Serial Ports:")
	fmt.Println(strings.Repeat("-", 60))
	for _, p := range ports {
		marker := ""
		if p.IsATSBT {
			marker = " <-- ATS-BT"
		}
		vidPid := "Unknown"
		if p.VID != "" {
			vidPid = p.VID + ":" + p.PID
		}
		fmt.Printf("  %s\n", p.Device)
		fmt.Printf("    Description: %s\n", p.Description)
		fmt.Printf("    VID:PID: %s%s\n\n", vidPid, marker)
	}

	return 0
}

func printInfo(session *atsbt.Session, jsonOut bool) error {
	info, err := session.Info()
	if err != nil {
		return err
	}

	if jsonOut {
		data, err := serde.MarshalJsonIndent(info)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("\nATS-BT Device Information:")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("  Port:        %s\n", info.Port)
	fmt.Printf("  MAC Address: %s\n", info.MacAddress)
	fmt.Printf("  Name:        %s\n", info.Name)
	fmt.Printf("  Version:     %s\n", info.Version)
	fmt.Printf("  Status:      %s\n\n", info.Status)

	return nil
}

const helpText = `
Available Commands:
  info          - Show device information
  status        - Get device status
  list          - List paired devices
  discover      - Start Bluetooth discovery
  play/pause    - Media controls
  next/prev     - Track controls
  vol+/vol-     - Volume controls
  reset         - Reset device
  quit/exit     - Exit interactive mode

  Any other text is sent as a raw command.
`

// shortcuts maps interactive aliases to raw module commands.
var shortcuts = map[string]string{
	"status":   "STATUS",
	"list":     "LIST",
	"discover": "INQUIRY",
	"play":     "AVRCP PLAY",
	"pause":    "AVRCP PAUSE",
	"next":     "AVRCP FORWARD",
	"prev":     "AVRCP BACKWARD",
	"vol+":     "AVRCP VOL_UP",
	"vol-":     "AVRCP VOL_DOWN",
}

func interactiveMode(session *atsbt.Session) {
	fmt.Println("\nATS-BT Interactive Mode")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println("Type commands to send to the device.")
	fmt.Println("Type 'help' for available commands.")
	fmt.Println("Type 'quit' or 'exit' to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("ats-bt> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}

		cmd := strings.TrimSpace(scanner.Text())
		if cmd == "" {
			continue
		}

		switch strings.ToLower(cmd) {
		case "quit", "exit", "q":
			return

		case "help":
			fmt.Print(helpText, "\n")
			continue

		case "info":
			if err := printInfo(session, false); err != nil {
				fmt.Println("Error:", err)
			}
			continue

		case "reset":
			fmt.Println("Resetting device...")
			if err := session.Reset(); err != nil {
				fmt.Println("Failed to reconnect after reset:", err)
			} else {
				fmt.Println("Device reset and reconnected successfully.")
			}
			continue
		}

		if raw, ok := shortcuts[strings.ToLower(cmd)]; ok {
			cmd = raw
		}

		response, err := session.Command(cmd, 0)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		if response != "" {
			fmt.Println(response)
		}
	}
}
