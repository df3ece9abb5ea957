package cpu

// regi2 names the four indexable registers selected by post-byte bits 6:5.
var regi2 = [4]string{"X", "Y", "U", "S"}

// regi4_6809/regi4_6309 are the 16-entry register-name tables used by
// TFR/EXG (and, on 6309, ADDR..CMPR/TFM). Grounded directly on
// dis_6809.c's regi4_6809/regi4_6309 arrays; entries 12..15 are reserved
// on 6809, and 6309 adds W, TV/0, E, F.
var regi4_6809 = [16]string{
	"D", "X", "Y", "U", "S", "PC", "??", "??",
	"A", "B", "CC", "DP", "??", "??", "??", "??",
}

var regi4_6309 = [16]string{
	"D", "X", "Y", "U", "S", "PC", "W", "TV",
	"A", "B", "CC", "DP", "0", "0", "E", "F",
}

// pshsregi/pshuregi are the PSHS/PULS and PSHU/PULU bit-to-register maps,
// MSB first. PSHU/PULU replace the U slot with S.
var pshsregi = [8]string{"PC", "U", "Y", "X", "DP", "B", "A", "CC"}
var pshuregi = [8]string{"PC", "S", "Y", "X", "DP", "B", "A", "CC"}

// tfmreg/tfmr0inc/tfmr1inc decode the TFM postbyte's register pair and
// per-register auto-increment/decrement behaviour.
var tfmreg = [16]byte{
	'D', 'X', 'Y', 'U', 'S', '?', '?', '?',
	'?', '?', '?', '?', '?', '?', '?', '?',
}
var tfmr0inc = [4]byte{'+', '-', '+', ' '}
var tfmr1inc = [4]byte{'+', '-', ' ', '+'}

// regi4 is the active 16-entry register table, selected by Init according
// to the configured CPU variant.
var regi4 = regi4_6809

// variant is the CPU family the package was configured for; it controls
// disassembly (register tables, opcode lookup, legality of 6309-only
// operands). The Emulator does not read it: it uses its own Variant field.
var variant CPUVariant

// Init configures the package-level register tables and active CPU
// variant. It must be called once before Disassemble is used, mirroring
// dis_6809_init's role in the original decoder.
func Init(v CPUVariant) {
	variant = v
	if v.Is6309() {
		regi4 = regi4_6309
	} else {
		regi4 = regi4_6809
	}
}
