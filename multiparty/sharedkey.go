package multiparty

import (
	"github.com/zeebo/blake3"

	"github.com/SadeemSajid/crypto-lattice/utils"
)

// SharedKey is the bit-vector a participant derives at the end of the key exchange.
type SharedKey []uint64

// Equal returns true if both keys have the same bits.
func (k SharedKey) Equal(other SharedKey) bool {
	return utils.EqualSlice(k, other)
}

// Digest returns the 32-byte BLAKE3 digest of the key bits, suitable as a
// symmetric session key.
func (k SharedKey) Digest() (digest [32]byte) {

	buf := make([]byte, len(k))
	for i := range k {
		buf[i] = byte(k[i] & 1)
	}

	hasher := blake3.New()

	// Sanity check, this error should not happen.
	if _, err := hasher.Write(buf); err != nil {
		panic(err)
	}

	copy(digest[:], hasher.Sum(nil))

	return
}
