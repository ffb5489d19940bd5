package entity

import (
	"bytes"
	"hash/crc32"
)

var utf8BOM = []byte("\uFEFF")

// ComputeChecksum returns the CRC32 of the script content. A leading BOM is
// dropped and \r\n and bare \r become \n, so checkouts on any platform agree
// while moving a line break still changes the checksum.
func ComputeChecksum(content []byte) int32 {
	normalized := bytes.TrimPrefix(content, utf8BOM)
	normalized = bytes.ReplaceAll(normalized, []byte("\r\n"), []byte("\n"))
	normalized = bytes.ReplaceAll(normalized, []byte("\r"), []byte("\n"))
	return int32(crc32.ChecksumIEEE(normalized))
}
