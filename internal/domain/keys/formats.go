package keys

// Named key container formats. Each maps between a Key (or
// AlgorithmParameters) value and a DER byte string.
const (
	// FormatSubjectPublicKeyInfo is the PKIX public key container
	// (SEQUENCE { AlgorithmIdentifier, BIT STRING }).
	FormatSubjectPublicKeyInfo = "SubjectPublicKeyInfo"

	// FormatPrivateKeyInfo is the PKCS#8 private key container
	// (SEQUENCE { INTEGER version=0, AlgorithmIdentifier, OCTET STRING }).
	FormatPrivateKeyInfo = "PrivateKeyInfo"

	// FormatRSAPublicKey is the bare PKCS#1 RSAPublicKey structure.
	FormatRSAPublicKey = "RSAPublicKey"

	// FormatRSAPrivateKey is the PKCS#1 two-prime RSAPrivateKey structure.
	FormatRSAPrivateKey = "RSAPrivateKey"

	// FormatDSAPrivateKey is the legacy DSA private key layout
	// (SEQUENCE { 0, p, q, g, y, x }).
	FormatDSAPrivateKey = "DSAPrivateKey"

	// FormatECPrivateKey is the SEC1 EC private key structure (version 1).
	FormatECPrivateKey = "ECPrivateKey"
)

// Named algorithm parameter container formats.
const (
	FormatDSAParameters = "DSAParameters"
	FormatECParameters  = "ECParameters"
	FormatDHParameters  = "DHParameters"
)

// Key material type constants for stored key records
const (
	KeyTypePrivate = "private"
	KeyTypePublic  = "public"
)
