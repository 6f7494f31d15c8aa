package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/machine"
	"github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/ui"
)

var runFlags struct {
	rom      string
	model    string
	scale    int
	kempston bool
	sound    bool
	headless bool
	frames   int
}

// runCmd boots the machine and opens the window (or runs headless frames).
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the emulator",
	RunE:  runEmulator,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.rom, "rom", "", "path to a ROM image (16K for 48k, 32K for 128k)")
	runCmd.Flags().StringVar(&runFlags.model, "machine", "48k", "machine model: 48k or 128k")
	runCmd.Flags().IntVar(&runFlags.scale, "scale", 3, "window scale")
	runCmd.Flags().BoolVar(&runFlags.kempston, "kempston", false, "attach a Kempston joystick")
	runCmd.Flags().BoolVar(&runFlags.sound, "sound", true, "enable the beeper")
	runCmd.Flags().BoolVar(&runFlags.headless, "headless", false, "run without a window")
	runCmd.Flags().IntVar(&runFlags.frames, "frames", 300, "frames to run in headless mode")
}

func runEmulator(cmd *cobra.Command, args []string) error {
	var mach machine.Machine
	switch runFlags.model {
	case "48k":
		mach = machine.Sinclair48K
	case "128k":
		mach = machine.Sinclair128K
	default:
		return fmt.Errorf("unknown machine %q (want 48k or 128k)", runFlags.model)
	}

	m := emu.New(emu.Settings{
		Machine:        mach,
		EnableKempston: runFlags.kempston,
		BeeperEnabled:  runFlags.sound,
		AYEnabled:      mach == machine.Sinclair128K,
	})
	if runFlags.rom != "" {
		if err := m.LoadROMFile(runFlags.rom); err != nil {
			return fmt.Errorf("load rom: %w", err)
		}
		log.Printf("loaded %s (%s)", runFlags.rom, mach)
	}

	if runFlags.headless {
		return runHeadless(m, runFlags.frames)
	}

	app := ui.NewApp(ui.Config{Title: "zxemu", Scale: runFlags.scale}, m)
	if err := app.Run(); err != nil {
		return err
	}
	app.SaveSettings()
	return nil
}

func runHeadless(m *emu.Emulator, frames int) error {
	if frames <= 0 {
		frames = 1
	}
	start := time.Now()
	for i := 0; i < frames; i++ {
		if ev := m.EmulateFrame(); ev != 0 {
			m.ClearEvents()
		}
	}
	dur := time.Since(start)
	log.Printf("headless: frames=%d elapsed=%s fps=%.2f",
		frames, dur.Truncate(time.Millisecond), float64(frames)/dur.Seconds())
	return nil
}
