package chem

import (
	"fmt"
	"strings"
)

// ErrInvalidSMILES wraps every structure parse failure.
var ErrInvalidSMILES = fmt.Errorf("invalid SMILES")

// Atom is one node of the molecular graph.
type Atom struct {
	Symbol    string
	AtomicNum int
	Aromatic  bool
	Charge    int
	Isotope   int
	// HCount is the explicit hydrogen count from a bracket atom, or -1
	// when hydrogens are implicit (organic-subset atom).
	HCount int
}

// Bond connects two atoms by index. Aromatic bonds carry Order 1.
type Bond struct {
	From, To int
	Order    int
	Aromatic bool
}

// Molecule is the parsed graph of a SMILES string.
type Molecule struct {
	Atoms []Atom
	Bonds []Bond
	adj   [][]int
}

// Neighbors returns the bond indices incident to atom i.
func (m *Molecule) Neighbors(i int) []int {
	return m.adj[i]
}

// Other returns the atom on the far side of bond b from atom i.
func (m *Molecule) Other(b Bond, i int) int {
	if b.From == i {
		return b.To
	}
	return b.From
}

var atomicNums = map[string]int{
	"H": 1, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9,
	"Na": 11, "Mg": 12, "Si": 14, "P": 15, "S": 16, "Cl": 17,
	"K": 19, "Ca": 20, "Fe": 26, "Cu": 29, "Zn": 30, "Se": 34,
	"Br": 35, "Ag": 47, "Sn": 50, "I": 53, "Pt": 78, "Au": 79, "Hg": 80,
}

// Default valences used to derive implicit hydrogen counts; atoms with
// several common valences list them ascending.
var valences = map[int][]int{
	5: {3}, 6: {4}, 7: {3, 5}, 8: {2}, 9: {1},
	15: {3, 5}, 16: {2, 4, 6}, 17: {1}, 35: {1}, 53: {1},
}

type ringBond struct {
	atom  int
	order int
}

// ParseSMILES converts a SMILES string into a molecular graph. The grammar
// covers the organic subset, bracket atoms with isotope/charge/H-count,
// branches, single-digit and %nn ring closures, and dot-separated components.
// Stereo markers (/, \, @) are accepted and ignored.
func ParseSMILES(s string) (*Molecule, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidSMILES)
	}

	mol := &Molecule{}
	var (
		prev      = -1        // atom awaiting a bond to the next one
		stack     []int       // branch return points
		rings     = map[int]ringBond{}
		bondOrder = 0 // pending explicit bond, 0 = none
	)

	addBond := func(a, b, order int, aromatic bool) {
		mol.Bonds = append(mol.Bonds, Bond{From: a, To: b, Order: order, Aromatic: aromatic})
	}

	closeRing := func(num int) error {
		if prev < 0 {
			return fmt.Errorf("%w: ring closure before any atom", ErrInvalidSMILES)
		}
		if open, ok := rings[num]; ok {
			delete(rings, num)
			order := open.order
			if bondOrder != 0 {
				order = bondOrder
			}
			aromatic := false
			if order == 0 {
				if mol.Atoms[open.atom].Aromatic && mol.Atoms[prev].Aromatic {
					aromatic = true
				}
				order = 1
			}
			if open.atom == prev {
				return fmt.Errorf("%w: ring bond %d closes on its own atom", ErrInvalidSMILES, num)
			}
			addBond(open.atom, prev, order, aromatic)
		} else {
			rings[num] = ringBond{atom: prev, order: bondOrder}
		}
		bondOrder = 0
		return nil
	}

	pushAtom := func(a Atom) {
		idx := len(mol.Atoms)
		mol.Atoms = append(mol.Atoms, a)
		if prev >= 0 {
			order := bondOrder
			aromatic := false
			if order == 0 {
				if mol.Atoms[prev].Aromatic && a.Aromatic {
					aromatic = true
				}
				order = 1
			}
			addBond(prev, idx, order, aromatic)
		}
		prev = idx
		bondOrder = 0
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '(':
			if prev < 0 {
				return nil, fmt.Errorf("%w: branch before any atom", ErrInvalidSMILES)
			}
			stack = append(stack, prev)
			i++
		case c == ')':
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unmatched ')'", ErrInvalidSMILES)
			}
			prev = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			i++
		case c == '-':
			bondOrder = 1
			i++
		case c == '=':
			bondOrder = 2
			i++
		case c == '#':
			bondOrder = 3
			i++
		case c == ':':
			bondOrder = 1
			i++
		case c == '/' || c == '\\':
			// stereo bonds degrade to single
			bondOrder = 1
			i++
		case c == '.':
			if bondOrder != 0 {
				return nil, fmt.Errorf("%w: bond symbol before '.'", ErrInvalidSMILES)
			}
			prev = -1
			i++
		case c >= '0' && c <= '9':
			if err := closeRing(int(c - '0')); err != nil {
				return nil, err
			}
			i++
		case c == '%':
			if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
				return nil, fmt.Errorf("%w: malformed %%nn ring closure", ErrInvalidSMILES)
			}
			if err := closeRing(int(s[i+1]-'0')*10 + int(s[i+2]-'0')); err != nil {
				return nil, err
			}
			i += 3
		case c == '[':
			atom, n, err := parseBracketAtom(s[i:])
			if err != nil {
				return nil, err
			}
			pushAtom(atom)
			i += n
		default:
			atom, n, err := parseOrganicAtom(s[i:])
			if err != nil {
				return nil, err
			}
			pushAtom(atom)
			i += n
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unmatched '('", ErrInvalidSMILES)
	}
	if len(rings) != 0 {
		return nil, fmt.Errorf("%w: unclosed ring bond", ErrInvalidSMILES)
	}
	if bondOrder != 0 {
		return nil, fmt.Errorf("%w: dangling bond symbol", ErrInvalidSMILES)
	}
	if len(mol.Atoms) == 0 {
		return nil, fmt.Errorf("%w: no atoms", ErrInvalidSMILES)
	}

	mol.adj = make([][]int, len(mol.Atoms))
	for bi, b := range mol.Bonds {
		mol.adj[b.From] = append(mol.adj[b.From], bi)
		mol.adj[b.To] = append(mol.adj[b.To], bi)
	}
	return mol, nil
}

// organic subset: B, C, N, O, P, S, F, Cl, Br, I and aromatic b c n o p s
func parseOrganicAtom(s string) (Atom, int, error) {
	if strings.HasPrefix(s, "Cl") {
		return Atom{Symbol: "Cl", AtomicNum: 17, HCount: -1}, 2, nil
	}
	if strings.HasPrefix(s, "Br") {
		return Atom{Symbol: "Br", AtomicNum: 35, HCount: -1}, 2, nil
	}
	c := s[0]
	switch c {
	case 'B', 'C', 'N', 'O', 'P', 'S', 'F', 'I':
		sym := string(c)
		return Atom{Symbol: sym, AtomicNum: atomicNums[sym], HCount: -1}, 1, nil
	case 'b', 'c', 'n', 'o', 'p', 's':
		sym := strings.ToUpper(string(c))
		return Atom{Symbol: sym, AtomicNum: atomicNums[sym], Aromatic: true, HCount: -1}, 1, nil
	}
	return Atom{}, 0, fmt.Errorf("%w: unexpected character %q", ErrInvalidSMILES, string(c))
}

// parseBracketAtom reads "[isotope? symbol chiral? Hcount? charge? class?]"
// starting at the '[' and returns the atom plus consumed byte count.
func parseBracketAtom(s string) (Atom, int, error) {
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return Atom{}, 0, fmt.Errorf("%w: unterminated bracket atom", ErrInvalidSMILES)
	}
	body := s[1:end]
	if body == "" {
		return Atom{}, 0, fmt.Errorf("%w: empty bracket atom", ErrInvalidSMILES)
	}

	atom := Atom{HCount: 0}
	i := 0

	for i < len(body) && isDigit(body[i]) {
		atom.Isotope = atom.Isotope*10 + int(body[i]-'0')
		i++
	}

	if i >= len(body) {
		return Atom{}, 0, fmt.Errorf("%w: bracket atom without element", ErrInvalidSMILES)
	}
	start := i
	c := body[i]
	switch {
	case c >= 'A' && c <= 'Z':
		i++
		if i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
			if _, ok := atomicNums[body[start:i+1]]; ok {
				i++
			}
		}
		atom.Symbol = body[start:i]
	case c >= 'a' && c <= 'z':
		// aromatic bracket atom, e.g. [nH]
		i++
		atom.Symbol = strings.ToUpper(body[start:i])
		atom.Aromatic = true
	default:
		return Atom{}, 0, fmt.Errorf("%w: bad element in bracket atom", ErrInvalidSMILES)
	}
	num, ok := atomicNums[atom.Symbol]
	if !ok {
		return Atom{}, 0, fmt.Errorf("%w: unknown element %q", ErrInvalidSMILES, atom.Symbol)
	}
	atom.AtomicNum = num

	for i < len(body) {
		switch body[i] {
		case '@':
			i++
		case 'H':
			i++
			atom.HCount = 1
			if i < len(body) && isDigit(body[i]) {
				atom.HCount = int(body[i] - '0')
				i++
			}
		case '+', '-':
			sign := 1
			if body[i] == '-' {
				sign = -1
			}
			ch := body[i]
			count := 0
			for i < len(body) && body[i] == ch {
				count++
				i++
			}
			if i < len(body) && isDigit(body[i]) {
				count = int(body[i] - '0')
				i++
			}
			atom.Charge = sign * count
		case ':':
			// atom class, ignored
			i++
			for i < len(body) && isDigit(body[i]) {
				i++
			}
		default:
			return Atom{}, 0, fmt.Errorf("%w: unexpected %q in bracket atom", ErrInvalidSMILES, string(body[i]))
		}
	}

	return atom, end + 1, nil
}

// ImplicitHydrogens derives the implicit hydrogen count for atom i. Bracket
// atoms use their explicit count; organic-subset atoms fill up to the
// smallest default valence that covers their bond order sum.
func (m *Molecule) ImplicitHydrogens(i int) int {
	a := m.Atoms[i]
	if a.HCount >= 0 {
		return a.HCount
	}
	sum := 0
	for _, bi := range m.adj[i] {
		sum += m.Bonds[bi].Order
	}
	if a.Aromatic {
		// aromatic systems consume one extra valence slot
		sum++
	}
	vals, ok := valences[a.AtomicNum]
	if !ok {
		return 0
	}
	for _, v := range vals {
		if sum <= v {
			return v - sum
		}
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
