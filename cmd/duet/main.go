// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/emulator"
)

func main() {
	var input string
	var equates string
	var mode string
	var verbose bool

	flag.StringVar(&input, "i", "-", "Program source")
	flag.StringVar(&equates, "e", "", ".yaml equates file to predefine")
	flag.StringVar(&mode, "m", "both", "Mode: solo, duet, or both")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var solo, duet bool
	switch mode {
	case "solo":
		solo = true
	case "duet":
		duet = true
	case "both":
		solo = true
		duet = true
	default:
		log.Fatalf("%v: Unknown mode: %v", os.Args[0], mode)
	}

	asm := &cpu.Assembler{Verbose: verbose}

	if len(equates) != 0 {
		inf, err := os.Open(equates)
		if err != nil {
			log.Fatalf("%v: %v", equates, err)
		}
		err = asm.LoadEquates(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", equates, err)
		}
	}

	var source io.Reader
	if input == "-" {
		source = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		source = inf
	}

	prog, err := asm.Parse(source)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	emu := emulator.NewEmulator(prog)
	emu.Verbose = verbose

	if solo {
		recovered, err := emu.Solo()
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		fmt.Printf("recover: %d\n", recovered)
	}

	if duet {
		result, err := emu.Duet()
		if err != nil {
			log.Printf("%v: %v", input, err)
		}
		if verbose {
			log.Printf("peer 0: sent %d", result.Sent[0])
		}
		fmt.Printf("sent: %d\n", result.Result())
	}
}
