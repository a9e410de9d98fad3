package binary

import "github.com/arafatamim/mp3info/internal/types"

// DecodeSynchsafe decodes a 4-byte synchsafe integer (7 bits per byte,
// most-significant byte first) into a 28-bit value.
//
// ID3v2 stores sizes this way so tag data can never contain the MPEG
// sync pattern. The high bit of every byte must be zero; a set bit
// means the field is not actually synchsafe and decoding fails with
// *types.InvalidSynchsafeError.
func DecodeSynchsafe(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, &types.InvalidSynchsafeError{}
	}
	if b[0]&0x80 != 0 || b[1]&0x80 != 0 || b[2]&0x80 != 0 || b[3]&0x80 != 0 {
		return 0, &types.InvalidSynchsafeError{Bytes: [4]byte{b[0], b[1], b[2], b[3]}}
	}
	return uint32(b[0])<<21 |
		uint32(b[1])<<14 |
		uint32(b[2])<<7 |
		uint32(b[3]), nil
}

// EncodeSynchsafe encodes a 28-bit value into its 4-byte synchsafe
// representation. The inverse of DecodeSynchsafe; values above 28 bits
// are truncated.
func EncodeSynchsafe(v uint32) [4]byte {
	return [4]byte{
		byte(v>>21) & 0x7F,
		byte(v>>14) & 0x7F,
		byte(v>>7) & 0x7F,
		byte(v) & 0x7F,
	}
}
