// Package pgp encrypts outgoing messages with OpenPGP via gopenpgp.
//
// Recipient public keys are imported once and stored as armored files under
// the user data directory:
//
//	~/.local/share/mattercrypt/keys/<recipient>.asc
//
// The optional signing key (an armored private key, possibly
// passphrase-locked) lives next to them as signing_key.asc. Output is
// standard armored OpenPGP, so recipients decrypt with plain gpg.
package pgp
