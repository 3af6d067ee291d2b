/*
Package bitmap packs glyph bitmaps into 4 bits per pixel and optionally
compresses them.

Packed bitmaps are row-aligned: every row occupies Stride(width) bytes,
the last byte of a row of odd width carrying a single pixel. Within a byte,
the pixel with even x occupies the low nibble and the pixel with odd x the
high nibble. This is the layout of 4-bit grayscale framebuffers with
horizontal, LSB-first pixel order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bitmap

// BitDepth is the number of bits per pixel of packed bitmaps.
const BitDepth = 4

// Stride is the number of bytes a packed row of width pixels occupies.
func Stride(width int) int {
	return (width + 1) / 2
}

// PackedSize is the number of bytes of a packed width×height bitmap.
func PackedSize(width, height int) int {
	return height * Stride(width)
}

// PackRow packs one row of 8-bit intensities into dst, which must have room
// for Stride(len(row)) bytes. Only the upper 4 bits of every pixel are kept.
func PackRow(dst []byte, row []byte) {
	n := len(row)
	for x := 0; x+1 < n; x += 2 {
		dst[x/2] = (row[x] >> 4) | (row[x+1] & 0xf0)
	}
	if n%2 == 1 {
		dst[n/2] = row[n-1] >> 4
	}
}

// Pack quantizes a width×height bitmap of 8-bit intensities (row-major) to
// 4 bits per pixel. Rows are packed independently; a row of odd width is
// padded to a whole byte instead of sharing a byte with the next row.
func Pack(pix []byte, width, height int) []byte {
	stride := Stride(width)
	packed := make([]byte, height*stride)
	for y := 0; y < height; y++ {
		PackRow(packed[y*stride:(y+1)*stride], pix[y*width:(y+1)*width])
	}
	return packed
}

// Nibble extracts the 4-bit intensity of pixel (x,y) from a packed bitmap
// of a given width.
func Nibble(packed []byte, width, x, y int) uint8 {
	b := packed[y*Stride(width)+x/2]
	if x%2 == 0 {
		return b & 0x0f
	}
	return b >> 4
}

// Unpack expands a packed bitmap to 8-bit intensities, replicating every
// nibble into both halves of a byte (0x0 → 0x00, 0xf → 0xff).
func Unpack(packed []byte, width, height int) []byte {
	pix := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := Nibble(packed, width, x, y)
			pix[y*width+x] = n<<4 | n
		}
	}
	return pix
}
