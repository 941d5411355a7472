package chem

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/PiyumiSL/Drug-Discovery/internal/ports"
)

// Calculator adapts the Morgan fingerprint to the pipeline's calculator port
// with a fixed radius and width.
type Calculator struct {
	radius int
	bits   uint
}

var _ ports.FingerprintCalculator = (*Calculator)(nil)

// NewCalculator builds a calculator; non-positive arguments fall back to the
// radius-2 / 2048-bit defaults.
func NewCalculator(radius int, bits uint) *Calculator {
	if radius <= 0 {
		radius = DefaultRadius
	}
	if bits == 0 {
		bits = DefaultBits
	}
	return &Calculator{radius: radius, bits: bits}
}

// Calculate parses smiles and returns its folded fingerprint.
func (c *Calculator) Calculate(smiles string) (*bitset.BitSet, error) {
	return Fingerprint(smiles, c.radius, c.bits)
}
