package plugin

import (
	"fmt"
)

// Info contains plugin metadata reported through the string opcodes
type Info struct {
	Name     string // Effect name, truncated to 32 bytes by the host protocol
	Vendor   string
	Product  string
	Version  int32
	UniqueID int32 // Host-visible id, usually a four character code
}

// FourCC packs up to four characters into a unique id, first character
// in the most significant byte. Shorter codes are padded with spaces.
func FourCC(code string) int32 {
	var b [4]byte
	for i := range b {
		b[i] = ' '
		if i < len(code) {
			b[i] = code[i]
		}
	}
	return int32(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// IDString renders the unique id as a four character code when every
// byte is printable ASCII, and as hex otherwise.
func (i Info) IDString() string {
	u := uint32(i.UniqueID)
	b := []byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08X", u)
		}
	}
	return string(b)
}
