// hexrom takes a filename and produces a Chip-8 ROM
// from parsing it as a hand assembled listing
// of the form:
//
// XXXX OPOP OPOP ...    comment
//
// Where XXXX is the address field and each OPOP is a
// 16 bit opcode written big endian into the ROM at XXXX
// and the addresses following it. Lines not starting with
// an address are ignored as is anything after a tab or a
// ';'. Gaps between addresses are zero filled.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jmchacon/chip8/memory"
)

var (
	offset = flag.Int("offset", int(memory.PROGRAM_START), "Address the ROM is loaded at. Listing addresses below this are an error.")
)

// parse reads a listing and returns the ROM image starting at base.
func parse(r io.Reader, base uint16) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	var output []byte
	l := 0
	for scanner.Scan() {
		t := scanner.Text()
		l++
		if i := strings.IndexAny(t, "\t;"); i != -1 {
			t = t[:i]
		}
		toks := strings.Fields(t)
		if len(toks) == 0 || len(toks[0]) != 4 {
			continue
		}
		addr, err := strconv.ParseUint(toks[0], 16, 16)
		if err != nil {
			// Not an address so not a listing line.
			continue
		}
		if len(toks) == 1 {
			return nil, fmt.Errorf("line %d %q has an address and no opcodes", l, t)
		}
		if addr < uint64(base) {
			return nil, fmt.Errorf("line %d address 0x%.4X is before the load address 0x%.4X", l, addr, base)
		}
		off := int(addr) - int(base)
		for _, v := range toks[1:] {
			if len(v) != 4 {
				return nil, fmt.Errorf("line %d %q: opcode %q must be 4 hex digits", l, t, v)
			}
			op, err := strconv.ParseUint(v, 16, 16)
			if err != nil {
				return nil, fmt.Errorf("can't process line %d %q - %v", l, t, err)
			}
			for len(output) < off+2 {
				output = append(output, 0x00)
			}
			output[off] = byte(op >> 8)
			output[off+1] = byte(op)
			off += 2
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if int(base)+len(output) > memory.Size {
		return nil, memory.ProgramTooLarge{Start: base, Length: len(output)}
	}
	return output, nil
}

func main() {
	flag.Parse()
	if len(flag.Args()) != 2 {
		log.Fatalf("Invalid command: %s <input> <output>", os.Args[0])
	}
	if *offset < 0 || *offset >= memory.Size {
		log.Fatalf("--offset out of range. Must be between 0-%d", memory.Size-1)
	}
	fn := flag.Args()[0]
	out := flag.Args()[1]

	f, err := os.Open(fn)
	if err != nil {
		log.Fatalf("Can't open %q for input - %v", fn, err)
	}
	output, err := parse(f, uint16(*offset))
	f.Close()
	if err != nil {
		log.Fatalf("Can't parse %q - %v", fn, err)
	}
	if err := os.WriteFile(out, output, 0644); err != nil {
		log.Fatalf("Got error writing to %q - %v", out, err)
	}
}
