// Package pixel packs dungeon map data into the 16 bit channels of an
// RGBA64 pixel.
package pixel

import (
	"github.com/boljen/go-bitmap"
)

// Pack8 joins two bytes into one channel, hi in the significant bits
func Pack8(hi, lo uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// Unpack8 is the inverse of Pack8
func Unpack8(v uint16) (uint8, uint8) {
	return uint8(v >> 8), uint8(v)
}

// Pack16 spreads a uint32 over two channels, hi in the significant bits
func Pack16(hi, lo uint16) uint32 {
	return uint32(hi)<<16 | uint32(lo)
}

// Unpack16 is the inverse of Pack16
func Unpack16(v uint32) (uint16, uint16) {
	return uint16(v >> 16), uint16(v)
}

// Flags returns an 8 bit bitmap holding v
func Flags(v uint8) bitmap.Bitmap {
	return bitmap.Bitmap([]byte{v})
}

// FlagByte returns the first byte of a bitmap (0 if it's empty)
func FlagByte(bm bitmap.Bitmap) uint8 {
	data := bm.Data(true)
	if len(data) == 0 {
		return 0
	}
	return data[0]
}
