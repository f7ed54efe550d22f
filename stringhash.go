package rowan

import (
	"hash/crc32"
	"strings"

	"golang.org/x/text/cases"
)

// GenerateCRC returns the IEEE 802.3 CRC32 of text, case folded first when
// caseInsensitive is set.
func GenerateCRC(text string, caseInsensitive bool) uint32 {
	if caseInsensitive {
		text = foldCase(text)
	}
	return crc32.ChecksumIEEE([]byte(text))
}

// GenerateCRCBinary returns the IEEE 802.3 CRC32 of raw data.
func GenerateCRCBinary(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

func foldCase(s string) string {
	return cases.Fold().String(s)
}

func containsFold(s, substr string) bool {
	return strings.Contains(foldCase(s), foldCase(substr))
}

// StringHash keeps a name together with its case-insensitive CRC32.
//
// Equality is hash equality only. Two different names whose CRCs collide
// (for example "plumless" and "buckeroo") are indistinguishable; that is an
// accepted limitation of using hashes as identities.
type StringHash struct {
	text string
	hash uint32
}

// NewStringHash hashes s case-insensitively.
func NewStringHash(s string) StringHash {
	return StringHash{text: s, hash: GenerateCRC(s, true)}
}

// String returns the original, unfolded text.
func (h StringHash) String() string {
	return h.text
}

// Hash returns the CRC32 of the folded text.
func (h StringHash) Hash() uint32 {
	return h.hash
}

// Equal reports whether both hashes match.
func (h StringHash) Equal(other StringHash) bool {
	return h.hash == other.hash
}

// Matches reports whether name hashes to the same value as h.
func (h StringHash) Matches(name string) bool {
	return h.hash == GenerateCRC(name, true)
}
