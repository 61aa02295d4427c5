package main

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"
)

// ImageFormat selects which header parser readHeader uses.
type ImageFormat int

const (
	FormatUnknown ImageFormat = iota
	FormatJPEG
	FormatPNG
	FormatBMP
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// bmpDimensionsOffset skips the 14-byte file header and the 4-byte DIB header size.
const bmpDimensionsOffset = 18

// formatForExt maps an extension to a header format. Matching is case-sensitive
// and only the listed spellings are recognised.
func formatForExt(ext string) ImageFormat {
	switch ext {
	case ".jpg", ".jpeg", ".JPG":
		return FormatJPEG
	case ".png", ".PNG":
		return FormatPNG
	case ".bmp", ".BMP":
		return FormatBMP
	default:
		return FormatUnknown
	}
}

// readHeader returns the pixel dimensions stored in the header of the image at
// path. Any I/O failure or malformed structure yields the zero PixelSize.
func readHeader(path string, format ImageFormat) PixelSize {
	f, err := os.Open(path)
	if err != nil {
		return PixelSize{}
	}
	defer f.Close()

	switch format {
	case FormatJPEG:
		return jpegSize(bufio.NewReader(f))
	case FormatPNG:
		return pngSize(bufio.NewReader(f))
	case FormatBMP:
		return bmpSize(f)
	default:
		return PixelSize{}
	}
}

// jpegSize walks marker segments until the first Start-Of-Frame segment.
func jpegSize(r *bufio.Reader) PixelSize {
	var marker [2]byte
	for {
		if _, err := io.ReadFull(r, marker[:]); err != nil {
			return PixelSize{}
		}
		if marker[0] != 0xFF {
			return PixelSize{}
		}

		switch {
		case marker[1] >= 0xC0 && marker[1] <= 0xCF:
			// [len_hi len_lo precision h_hi h_lo w_hi w_lo]
			var sof [7]byte
			if _, err := io.ReadFull(r, sof[:]); err != nil {
				return PixelSize{}
			}
			return PixelSize{
				Width:  uint32(binary.BigEndian.Uint16(sof[5:7])),
				Height: uint32(binary.BigEndian.Uint16(sof[3:5])),
			}
		case marker[1] == 0xD8:
			continue
		}

		var length [2]byte
		if _, err := io.ReadFull(r, length[:]); err != nil {
			return PixelSize{}
		}
		n := int(binary.BigEndian.Uint16(length[:]))
		if n < 2 {
			return PixelSize{}
		}
		if _, err := r.Discard(n - 2); err != nil {
			return PixelSize{}
		}
	}
}

// pngSize verifies the signature and then skips chunks until IHDR.
func pngSize(r *bufio.Reader) PixelSize {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil || !bytes.Equal(sig[:], pngSignature) {
		return PixelSize{}
	}

	var chunk [8]byte
	for {
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			return PixelSize{}
		}
		length := binary.BigEndian.Uint32(chunk[0:4])
		if string(chunk[4:8]) == "IHDR" {
			var dims [8]byte
			if _, err := io.ReadFull(r, dims[:]); err != nil {
				return PixelSize{}
			}
			return PixelSize{
				Width:  binary.BigEndian.Uint32(dims[0:4]),
				Height: binary.BigEndian.Uint32(dims[4:8]),
			}
		}
		// Chunk data plus the trailing CRC.
		if _, err := io.CopyN(io.Discard, r, int64(length)+4); err != nil {
			return PixelSize{}
		}
	}
}

// bmpSize reads the DIB width and height at their fixed offset. The signature
// is not checked.
func bmpSize(r io.ReaderAt) PixelSize {
	var dims [8]byte
	if _, err := r.ReadAt(dims[:], bmpDimensionsOffset); err != nil {
		return PixelSize{}
	}
	return PixelSize{
		Width:  binary.LittleEndian.Uint32(dims[0:4]),
		Height: binary.LittleEndian.Uint32(dims[4:8]),
	}
}
