// Package cpu implements the duet register machine and its assembler.
//
// The machine has a sparse bank of int64 registers named 'a' through 'z', a
// signed instruction pointer, and seven instructions: snd, set, add, mul,
// mod, rcv and jgz. The side effects of snd and rcv are delegated to an Io
// strategy, so the same execution loop drives both the solo recover mode and
// a pair of peers talking over a duplex channel.
//
// The assembler provides a small assembly language for the instruction set,
// supporting macros, labels, equates, and compile-time expression evaluation.
package cpu
