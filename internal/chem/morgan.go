package chem

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

const (
	// DefaultRadius bounds the atom neighborhoods enumerated per atom.
	DefaultRadius = 2
	// DefaultBits is the folded fingerprint length.
	DefaultBits = 2048
)

// Fingerprint computes a Morgan-style circular fingerprint for a SMILES
// string: atom-centered neighborhoods up to radius bonds are hashed and
// folded into an nbits-wide bit set. The result is deterministic for a given
// input; hash collisions across neighborhoods are accepted.
func Fingerprint(smiles string, radius int, nbits uint) (*bitset.BitSet, error) {
	mol, err := ParseSMILES(smiles)
	if err != nil {
		return nil, err
	}
	return MorganFingerprint(mol, radius, nbits), nil
}

// MorganFingerprint folds the environment hashes of mol into a bit set.
func MorganFingerprint(mol *Molecule, radius int, nbits uint) *bitset.BitSet {
	if radius < 0 {
		radius = DefaultRadius
	}
	if nbits == 0 {
		nbits = DefaultBits
	}

	fp := bitset.New(nbits)
	cur := initialInvariants(mol)
	for _, h := range cur {
		fp.Set(uint(h % uint64(nbits)))
	}

	for r := 0; r < radius; r++ {
		next := make([]uint64, len(cur))
		for i := range mol.Atoms {
			next[i] = expandEnvironment(mol, cur, i)
			fp.Set(uint(next[i] % uint64(nbits)))
		}
		cur = next
	}
	return fp
}

// initialInvariants hashes the radius-0 atom descriptors: element, degree,
// charge, implicit hydrogens, aromaticity, isotope.
func initialInvariants(mol *Molecule) []uint64 {
	inv := make([]uint64, len(mol.Atoms))
	for i, a := range mol.Atoms {
		h := fnv.New64a()
		writeUint(h, uint64(a.AtomicNum))
		writeUint(h, uint64(len(mol.Neighbors(i))))
		writeUint(h, uint64(int64(a.Charge)+16))
		writeUint(h, uint64(mol.ImplicitHydrogens(i)))
		if a.Aromatic {
			writeUint(h, 1)
		} else {
			writeUint(h, 0)
		}
		writeUint(h, uint64(a.Isotope))
		inv[i] = h.Sum64()
	}
	return inv
}

// expandEnvironment combines an atom's hash with its neighbors' hashes from
// the previous round. Neighbor contributions are sorted so the result does
// not depend on SMILES atom order.
func expandEnvironment(mol *Molecule, cur []uint64, i int) uint64 {
	type contribution struct {
		order int
		hash  uint64
	}
	contribs := make([]contribution, 0, len(mol.Neighbors(i)))
	for _, bi := range mol.Neighbors(i) {
		b := mol.Bonds[bi]
		order := b.Order
		if b.Aromatic {
			order = 4
		}
		contribs = append(contribs, contribution{order: order, hash: cur[mol.Other(b, i)]})
	}
	sort.Slice(contribs, func(a, b int) bool {
		if contribs[a].order != contribs[b].order {
			return contribs[a].order < contribs[b].order
		}
		return contribs[a].hash < contribs[b].hash
	})

	h := fnv.New64a()
	writeUint(h, cur[i])
	for _, c := range contribs {
		writeUint(h, uint64(c.order))
		writeUint(h, c.hash)
	}
	return h.Sum64()
}

func writeUint(h hash.Hash, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}
