// Command sid64 drives C64 SID music routines from the command line: run a
// PRG to completion, play it frame by frame, list its SID register changes, or poke
// at it in the interactive monitor.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sid64/c64"
	"sid64/inst"
	"sid64/vic"
)

func main() {
	var ntsc bool

	model := func() vic.Model {
		if ntsc {
			return vic.NTSC
		}
		return vic.PAL
	}

	rootCmd := &cobra.Command{
		Use:   "sid64",
		Short: "sid64 — drive C64 SID music routines",
	}
	rootCmd.PersistentFlags().BoolVar(&ntsc, "ntsc", false, "use NTSC raster timing")

	var frames uint32
	runCmd := &cobra.Command{
		Use:   "run <file.prg>",
		Short: "Load a PRG and call its load address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := c64.New(model(), 0)
			addr, err := m.LoadPrg(args[0], true)
			if err != nil {
				return err
			}
			if frames > 0 {
				advanced := m.RunFrames(frames)
				fmt.Printf("advanced %d frame(s), %d cycles\n", advanced, m.Cpu.CyclesExecuted)
			} else {
				m.Call(addr)
				fmt.Printf("returned after %d cycles\n", m.Cpu.CyclesExecuted)
			}
			fmt.Println(m.Sid.String())
			return nil
		},
	}
	runCmd.Flags().Uint32Var(&frames, "frames", 0, "advance this many frames instead of running to completion")

	traceCmd := &cobra.Command{
		Use:   "trace <file.prg>",
		Short: "Call a PRG and list every SID register change in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := c64.New(model(), 0)
			addr, err := m.LoadPrg(args[0], true)
			if err != nil {
				return err
			}
			for _, ch := range m.CallTrace(addr) {
				fmt.Println(ch.String())
			}
			return nil
		},
	}

	disasmCmd := &cobra.Command{
		Use:   "disasm <file.prg>",
		Short: "Disassemble a PRG payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if len(data) <= 2 {
				return fmt.Errorf("disasm %s: %w", args[0], c64.ErrPrgTooShort)
			}
			base := uint16(data[1])<<8 | uint16(data[0])
			payload := data[2:]

			for i := 0; i < len(payload); {
				pc := base + uint16(i)
				d, ok := inst.Decode(payload[i:min(i+3, len(payload))])
				if ok && i+d.Size() > len(payload) {
					ok = false // instruction truncated at end of payload
				}
				if !ok {
					fmt.Printf("$%04X: %02X        ???\n", pc, payload[i])
					i++
					continue
				}
				raw := ""
				for j := 0; j < d.Size(); j++ {
					raw += fmt.Sprintf("%02X ", payload[i+j])
				}
				fmt.Printf("$%04X: %-9s %s\n", pc, raw, inst.Disassemble(pc, d))
				i += d.Size()
			}
			return nil
		},
	}

	monitorCmd := &cobra.Command{
		Use:   "monitor <file.prg>",
		Short: "Load a PRG and step through it interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := c64.New(model(), 0)
			if _, err := m.LoadPrg(args[0], true); err != nil {
				return err
			}
			return m.Monitor()
		},
	}

	rootCmd.AddCommand(runCmd, traceCmd, disasmCmd, monitorCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
