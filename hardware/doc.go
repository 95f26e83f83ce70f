// Package hardware is the base package for the emulation of a complete
// machine. It and its sub-packages contain everything required for a headless
// emulation of a Z80 or 6502 system.
//
// The Machine type is the root of the emulation. It owns the CPU, the memory,
// the IO decoder and the interrupt daisy chain and defines the order in which
// they see the pin word on every tick. From here, the emulation can either be
// started to run continuously (with optional callback to check for
// continuation) or it can be stepped tick by tick or instruction by
// instruction.
package hardware
