// Package hufftree implements canonical Huffman code trees, the kind used by
// DEFLATE, gzip, zlib and bzip2 to decode symbols from a bit stream.
//
// A Tree is built from a Bootstrap, a run-length description of the bit
// length of each symbol, or from a flat list of bit lengths.  Decode walks the
// tree one bit at a time.  Trees built in coding mode can also map a symbol
// back to its bits with Code or Encode.
//
// References:
//
//     <https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.2.2
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package hufftree
