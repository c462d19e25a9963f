package golix

// LengthTable gives the fixed byte lengths for a ciphersuite's key,
// signature, MAC, asymmetric-envelope, and seed material. §3 of the
// protocol design fixes two live rows; suite 0 is the inoperative test
// suite.
type LengthTable struct {
	Key  int
	Sig  int
	Mac  int
	Asym int
	Seed int
}

var lengthTables = map[uint8]LengthTable{
	0: {Key: 32, Sig: 512, Mac: 64, Asym: 512, Seed: 0},
	1: {Key: 32, Sig: 512, Mac: 64, Asym: 512, Seed: 16},
}

// LengthsFor returns the cipher length table for cipher, or
// ErrUnknownCipher if it is not registered.
func LengthsFor(cipher uint8) (LengthTable, error) {
	t, ok := lengthTables[cipher]
	if !ok {
		return LengthTable{}, withDetail(ErrUnknownCipher, itoa(int(cipher)))
	}
	return t, nil
}
