// Package raster holds a decoded PNG image and answers pixel queries.
//
// An [Image] owns its header, palette, transparency table and sample buffer.
// The buffer stores bytesPerPixel × width × height bytes in row-major order;
// samples narrower than a byte are widened to one byte each (see [Unpack]).
//
// # Pixel Access
//
//	c, err := img.Pixel(x, y) // color.NRGBA
//
// The color type decides how samples become RGBA:
//
//   - Grayscale: (s, s, s, 255)
//   - Truecolor: (r, g, b, 255)
//   - Indexed: palette entry, alpha from the tRNS table or 255
//   - GrayscaleAlpha: (s, s, s, a)
//   - TruecolorAlpha: (r, g, b, a)
//
// 16-bit samples are reduced to their high byte, and grayscale samples of
// 1, 2 or 4 bits are scaled to the full 0-255 range.
//
// # Bulk Conversion
//
// [Image.RGBA] returns the whole image as interleaved R, G, B, A bytes.
// [Image.ToNRGBA] and [Image.ToRGBA] build standard library images, and
// Image itself satisfies image.Image.
package raster
