package keys

import "math/big"

// DSAParameters are the DSA domain parameters (p, q, g).
type DSAParameters struct {
	P *big.Int
	Q *big.Int
	G *big.Int
}

// Equal reports whether two DSA parameter sets are identical.
func (p *DSAParameters) Equal(other *DSAParameters) bool {
	if p == nil || other == nil {
		return p == other
	}
	return bigEqual(p.P, other.P) && bigEqual(p.Q, other.Q) && bigEqual(p.G, other.G)
}

// ECParameters name the curve an EC key lives on.
type ECParameters struct {
	Curve string
}

// DHParameters are Diffie-Hellman group parameters (p, g, optional q).
type DHParameters struct {
	P *big.Int
	G *big.Int

	// Q is the subgroup order; nil when the group does not declare one.
	Q *big.Int
}

// AlgorithmParameters is the tagged union of family-specific auxiliary data
// independent of any single key. Parsed on demand from a container buffer
// and never mutated afterwards.
type AlgorithmParameters struct {
	Family Family
	DSA    *DSAParameters
	EC     *ECParameters
	DH     *DHParameters
}
