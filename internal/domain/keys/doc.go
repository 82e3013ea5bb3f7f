// Package keys defines the immutable key value objects of the provider
// framework (RSA, DSA, EC), their algorithm parameters, the named container
// formats the codec maps them to, and the contracts for persisting encoded
// key material.

package keys
