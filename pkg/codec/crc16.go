package codec

const (
	crc16Init uint16 = 0xFFFF
	crc16Poly uint16 = 0xA001
)

// CRC16 computes the reflected CRC-16 (init 0xFFFF, poly 0xA001, no final
// xor) of data. Bit-serial, no lookup table.
func CRC16(data []byte) uint16 {
	crc := crc16Init
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&0x0001 != 0 {
				crc = (crc >> 1) ^ crc16Poly
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
