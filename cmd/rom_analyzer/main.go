// Command rom_analyzer prints the decoded header and bank layout of an
// iNES ROM.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/nesquik/corenes/internal/cartridge"
	"github.com/nesquik/corenes/internal/ines"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: rom_analyzer <rom_file>")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("failed to open ROM file: %v", err)
	}
	defer f.Close()

	cart, err := ines.Load(f)
	if err != nil {
		log.Fatalf("failed to load ROM: %v", err)
	}

	fmt.Printf("File: %s\n", os.Args[1])
	fmt.Printf("Mapper: %d\n", cart.MapperID)
	fmt.Printf("Mirroring: %s\n", mirroringName(cart.Mirroring))
	fmt.Printf("PRG ROM: %d bytes (%d x 16KiB banks)\n", len(cart.PRGROM), len(cart.PRGROM)/0x4000)
	if cart.HasCHRRAM() {
		fmt.Printf("CHR RAM: %d bytes\n", len(cart.CHRRAM))
	} else {
		fmt.Printf("CHR ROM: %d bytes (%d x 8KiB banks)\n", len(cart.CHRROM), len(cart.CHRROM)/0x2000)
	}
	if len(cart.PRGRAM) > 0 {
		fmt.Printf("PRG RAM: %d bytes\n", len(cart.PRGRAM))
	}
}

func mirroringName(m cartridge.Mirroring) string {
	switch m {
	case cartridge.Vertical:
		return "vertical"
	case cartridge.SingleLower:
		return "single-screen (lower)"
	case cartridge.SingleUpper:
		return "single-screen (upper)"
	case cartridge.FourScreen:
		return "four-screen"
	default:
		return "horizontal"
	}
}
