// Package packet encodes analog and digital readings into DL frames.
package packet

// A DL frame carries up to 16 values in a single checksummed packet:
//
//	byte      | content
//	----------+---------------------------------------------------
//	0         | 'd' (0x64)
//	1         | 'l' (0x6c)
//	2         | manifest: bits 0..3 = values - 1, bits 4..7 = analog bytes
//	3..       | analog bytes, low byte before high byte for split values
//	..        | digital/8 + 1 bytes of digital bits (none
//	          | without digital values), low bit first, unused bits 0
//	last      | XOR of all previous bytes
//
// XOR of a complete frame, checksum included, is always 0.
//
// Producer: L0 firmware or a host sampler
// Consumer: whatever reads the stream
