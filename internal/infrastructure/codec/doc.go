// Package codec implements the key container codec: the bidirectional
// mapping between key values and the standard DER container formats
// (PKIX SubjectPublicKeyInfo, PKCS#8 PrivateKeyInfo, PKCS#1 RSAPrivateKey,
// the legacy DSA private key layout and SEC1 ECPrivateKey), plus the
// elliptic curve point codec and the DSA/ECDSA signature codec.

package codec
