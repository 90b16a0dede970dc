// Package chunk reads the PNG container format.
//
// A PNG stream is an 8-byte signature followed by a sequence of chunks:
//
//	length (4 bytes, big-endian) | type (4 ASCII bytes) | data (length bytes) | CRC-32 (4 bytes)
//
// # Reading
//
// [NewReader] checks the signature, and [Reader.Next] returns one [Chunk] at a
// time until the input is exhausted:
//
//	r, err := chunk.NewReader(data)
//	if err != nil {
//	    return err
//	}
//	for {
//	    c, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    switch c.Kind {
//	    case chunk.IHDR:
//	        // ...
//	    }
//	}
//
// # Chunk Kinds
//
// Chunk types are classified into the closed [Kind] enumeration through a
// lookup table keyed by the 4-byte [Tag]. Types the decoder does not handle
// map to [Unknown] and can be skipped; [Tag.Critical] tells whether skipping
// is allowed by the format.
//
// # Checksums
//
// The CRC-32 trailer is always read. It is only compared against the chunk
// contents when the reader is created with [VerifyCRC] or when [Chunk.Verify]
// is called.
package chunk
