package racf

import "golang.org/x/text/encoding/charmap"

// The security authority works in EBCDIC. Identifiers cross the boundary
// byte for byte so descriptor lengths are preserved.
var hostCodePage = charmap.CodePage1047

// ebcdicSub is the EBCDIC substitute character.
const ebcdicSub = 0x3f

// toEBCDIC transcodes src into dst, treating src as Latin-1, and returns the
// number of bytes written.
func toEBCDIC(dst, src []byte) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		b, ok := hostCodePage.EncodeRune(rune(src[i]))
		if !ok {
			b = ebcdicSub
		}
		dst[i] = b
	}
	return n
}

// fromEBCDIC is the inverse of toEBCDIC.
func fromEBCDIC(dst, src []byte) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		r := hostCodePage.DecodeByte(src[i])
		if r > 0xff {
			r = '?'
		}
		dst[i] = byte(r)
	}
	return n
}
