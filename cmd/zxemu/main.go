package main

import "github.com/FabianRolfMatthiasNoll/ZXSpectrumEmulator/internal/cli"

func main() {
	cli.Execute()
}
