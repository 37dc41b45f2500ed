package codec_test

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ssargent/caresave/pkg/codec"
)

// ExampleRecordCodec_basic demonstrates encoding a save and reading it back
func ExampleRecordCodec_basic() {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC))
	c := codec.NewRecordCodec(codec.WithClock(clock))

	encoded, err := c.Encode(&codec.UserRecord{
		Email:             "ember@example.com",
		AccountID:         "acct-1",
		CareCopper:        1500,
		Status:            codec.StatusIncubating,
		SessionsRemaining: 7,
		CompanionName:     "Ember",
		CompanionLevel:    1,
		CreatedAt:         time.Date(2024, 11, 2, 18, 0, 0, 0, time.UTC),
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Encoded %d bytes\n", len(encoded))
	fmt.Println(codec.ToText(encoded))

	record, err := c.Decode(encoded)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Copper: %d\n", record.CareCopper)
	fmt.Printf("Companion: %s (%s, %d sessions left)\n", record.CompanionName, record.Status, record.SessionsRemaining)
	fmt.Printf("Identity: %s\n", record.IdentityHash)
	fmt.Printf("Last sync: %s\n", record.LastSync.Format(time.RFC3339))

	// Output:
	// Encoded 63 bytes
	// Q0FSRQGjhVMRuqNf1AAABdwAAAAAAAAAAAEHAAAAAAAAAABFbWJlcgAAAAAAAWcmaKBn0/ZdAAAAAAAAABqs
	// Copper: 1500
	// Companion: Ember (incubating, 7 sessions left)
	// Identity: a3855311baa35fd4
	// Last sync: 2025-03-14T09:26:53Z
}

// ExampleRecordCodec_errorHandling demonstrates classifying decode failures
func ExampleRecordCodec_errorHandling() {
	c := codec.NewRecordCodec()

	_, err := c.DecodeText("not-base64!!")
	fmt.Println(errors.Is(err, codec.ErrMalformedTransport))

	_, err = c.Decode([]byte{0x01, 0x02, 0x03})
	fmt.Println(codec.KindOf(err))

	// Output:
	// true
	// MalformedRecord
}

// ExampleCRC16 demonstrates the checksum check value
func ExampleCRC16() {
	fmt.Printf("%#04x\n", codec.CRC16([]byte("123456789")))

	// Output:
	// 0x4b37
}
