package codec

const (
	// Magic identifies a buffer as a CARE user save ("CARE")
	Magic uint32 = 0x43415245

	// CurrentVersion is the layout version written by Encode
	CurrentVersion byte = 0x01

	// RecordSize is the fixed width of a current-version record
	RecordSize = 63

	// ProtectedSize is the length of the checksummed prefix [0, ProtectedSize)
	ProtectedSize = 61

	// CompanionNameSize is the width of the companion name field
	CompanionNameSize = 10

	// TagCapacity is the reference capacity of the target tag class (NTAG 216)
	TagCapacity = 868

	// MaxLifetimeSessions is the largest value the 24-bit lifetime sessions
	// field holds
	MaxLifetimeSessions = 1<<24 - 1
)

// span is a fixed-width field at an offset
type span struct {
	off, len int
}

func (s span) end() int { return s.off + s.len }

// layout describes where each field lives for one version of the format.
// Versions never share a layout value; a new version gets a new entry in
// layouts even when most offsets are unchanged.
type layout struct {
	version byte
	size    int

	identity      span
	careCopper    span
	careSilver    span
	careGold      span
	status        span
	sessions      span
	companionHash span
	companionName span
	level         span
	createdAt     span
	lastSync      span
	actions       span
	sessionsTotal span
	checksum      span
}

// protected is the checksummed region, everything before the checksum
func (l *layout) protected() span {
	return span{off: 0, len: l.checksum.off}
}

var layoutV1 = &layout{
	version:       0x01,
	size:          RecordSize,
	identity:      span{5, HashSize},
	careCopper:    span{13, 4},
	careSilver:    span{17, 4},
	careGold:      span{21, 4},
	status:        span{25, 1},
	sessions:      span{26, 1},
	companionHash: span{27, HashSize},
	companionName: span{35, CompanionNameSize},
	level:         span{45, 1},
	createdAt:     span{46, 4},
	lastSync:      span{50, 4},
	actions:       span{54, 4},
	sessionsTotal: span{58, 3},
	checksum:      span{ProtectedSize, 2},
}

var layouts = map[byte]*layout{
	layoutV1.version: layoutV1,
}

// currentLayout is the layout Encode writes
func currentLayout() *layout {
	return layouts[CurrentVersion]
}

// layoutFor returns the layout registered for version and whether one exists
func layoutFor(version byte) (*layout, bool) {
	l, ok := layouts[version]
	return l, ok
}
