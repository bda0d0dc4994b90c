package c64

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"sid64/inst"
)

// The monitor is an interactive single-step TUI over a machine: the memory
// around PC, the CPU registers and flags, the SID shadow and the VIC
// counters, refreshed after every step.

type monitorModel struct {
	c      *C64
	prevPC uint16
	done   bool // the running program exited
}

func (m monitorModel) Init() tea.Cmd { return nil }

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "j":
			if m.done {
				return m, nil
			}
			m.prevPC = m.c.Cpu.PC
			if m.c.Cpu.RunStep() == 0 {
				m.done = true
			}

		case "f":
			// run to the next vsync
			if m.done {
				return m, nil
			}
			m.prevPC = m.c.Cpu.PC
			frame := m.c.Vic.Frame
			for m.c.Vic.Frame == frame {
				if m.c.Cpu.RunStep() == 0 {
					m.done = true
					break
				}
			}
		}
	}
	return m, nil
}

// renderPage renders one 16-byte row of memory. The current PC is
// highlighted.
func (m monitorModel) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		b := m.c.Ram.Read(start + i)
		if start+i == m.c.Cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m monitorModel) pageTable() string {
	header := "addr | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	rows := []string{header}
	base := m.c.Cpu.PC &^ 0x000f
	for i := -2; i <= 3; i++ {
		rows = append(rows, m.renderPage(base+uint16(i)*16))
	}
	return strings.Join(rows, "\n")
}

func (m monitorModel) status() string {
	cpu := m.c.Cpu
	var flags string
	for _, flag := range []bool{
		cpu.Flags.Negative,
		cpu.Flags.Overflow,
		cpu.Flags.Unused,
		cpu.Flags.B,
		cpu.Flags.Decimal,
		cpu.Flags.DisableInterrupt,
		cpu.Flags.Zero,
		cpu.Flags.Carry,
	} {
		if flag {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
SP: %02x
 A: %02x
 X: %02x
 Y: %02x
cyc: %d (+%d)
N V _ B D I Z C
`,
		cpu.PC, m.prevPC,
		cpu.SP, cpu.A, cpu.X, cpu.Y,
		cpu.CyclesExecuted, cpu.CyclesLastStep,
	) + flags
}

func (m monitorModel) chips() string {
	v := m.c.Vic
	return fmt.Sprintf("%s\n\n%s line %d frame %d  $d011 %02x $d012 %02x",
		m.c.Sid.String(),
		v.Model, v.Rasterline, v.Frame,
		m.c.Ram.Read(0xD011), m.c.Ram.Read(0xD012))
}

func (m monitorModel) current() string {
	pc := m.c.Cpu.PC
	d, ok := inst.Decode([]byte{
		m.c.Ram.Read(pc), m.c.Ram.Read(pc + 1), m.c.Ram.Read(pc + 2),
	})
	if !ok {
		return fmt.Sprintf("??? $%02x", m.c.Ram.Read(pc))
	}
	return inst.Disassemble(pc, d) + "\n" + spew.Sdump(d.Instruction)
}

func (m monitorModel) View() string {
	footer := "space/j step · f frame · q quit"
	if m.done {
		footer = "program exited · q quit"
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		m.chips(),
		"",
		m.current(),
		footer,
	)
}

// Monitor starts the interactive TUI over the machine's current state.
func (c *C64) Monitor() error {
	_, err := tea.NewProgram(monitorModel{c: c, prevPC: c.Cpu.PC}).Run()
	return err
}
