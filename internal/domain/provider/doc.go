// Package provider defines the core contracts of the cryptographic provider
// framework: algorithm descriptors, the context lifecycle shared by every
// capability (digest, cipher, public-key), and the backend interface that
// supplies the raw primitives the framework builds on.

package provider
