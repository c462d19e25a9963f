// Package golix implements the cryptographic core of the Golix protocol:
// content-addressed, signed, and/or encrypted binary containers exchanged
// between participants in a decentralized data network.
//
// A participant holds an Identity (a key bundle bound to exactly one
// ciphersuite). Three roles operate over that identity:
//
//   - FirstParty owns the private keys and mints/decrypts objects.
//   - SecondParty is the publishable, public-key-only view of a FirstParty,
//     used by others to verify signatures and target encryption.
//   - ThirdParty holds no private material at all and can only verify
//     signed objects — it can never decrypt anything.
//
// Six object kinds are produced and consumed here: GIDC (identity
// container), GEOC (encrypted container), GOBS (static binding), GOBD
// (dynamic binding), GDXX (debinding), and GARQ (asymmetric request). Byte
// framing for each kind is handled by wire.go, which stands in for the
// external declarative schema parser described in the protocol's design
// (see SPEC_FULL.md component J): this package owns the crypto, not the
// on-the-wire grammar.
//
// Everything here is pure computation — no I/O, no suspension, no
// network. See the package-level Config for how to plug in logging,
// randomness, and default suite/address-algo choices without resorting to
// ambient global state.
package golix
