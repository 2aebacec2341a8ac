// Command tribrato renders and plays the two-row vibrato processor.
//
// Usage:
//
//	tribrato render [flags]   process a test tone or WAV file offline
//	tribrato play [flags]     play a test tone through the processor live
//	tribrato params           list parameter IDs and ranges
//
// Row 1 parameters use plain flag names (-pitch, -rate, ...); row 2 uses the
// row2- prefix (-row2-pitch, ...).
//
// Examples:
//
//	tribrato render -trigger -pitch 80 -rate 6 -out vibrato.wav
//	tribrato render -in voice.wav -script swell.lua -out swell.wav
//	tribrato play -source saw -freq 110 -formant 60 -midi
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	log.SetFlags(log.Lshortfile)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "render":
		err = runRender(args)
	case "play":
		err = runPlay(args)
	case "params":
		err = runParams(args)
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: tribrato <command> [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  render   process a test tone or WAV file offline and print an analysis\n")
	fmt.Fprintf(os.Stderr, "  play     play a test tone through the processor in real time\n")
	fmt.Fprintf(os.Stderr, "  params   list parameter IDs and ranges\n")
	fmt.Fprintf(os.Stderr, "\nRun 'tribrato <command> -h' for command flags.\n")
}
