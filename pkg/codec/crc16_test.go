package codec

import "testing"

func TestCRC16(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		want uint16
	}{
		{name: "empty", data: nil, want: 0xFFFF},
		{name: "single zero byte", data: []byte{0x00}, want: 0x40BF},
		{name: "check value", data: []byte("123456789"), want: 0x4B37},
		{name: "ab", data: []byte("ab"), want: 0xC9A9},
		{name: "ba", data: []byte("ba"), want: 0x38E9},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CRC16(tc.data); got != tc.want {
				t.Errorf("CRC16(%q) = %#04x, want %#04x", tc.data, got, tc.want)
			}
		})
	}
}

func TestCRC16_Deterministic(t *testing.T) {
	data := []byte("CARE user save")
	if CRC16(data) != CRC16(data) {
		t.Error("CRC16 is not deterministic")
	}
}

func TestCRC16_SingleBitFlips(t *testing.T) {
	data := []byte("the quick brown dragon hatches over the lazy egg..")
	base := CRC16(data)

	for i := range data {
		for bit := 0; bit < 8; bit++ {
			data[i] ^= 1 << bit
			if CRC16(data) == base {
				t.Errorf("flip at byte %d bit %d not detected", i, bit)
			}
			data[i] ^= 1 << bit
		}
	}
}
