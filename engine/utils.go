package engine

import (
	"crypto/rand"
	"encoding/binary"

	uuid "github.com/satori/go.uuid"
)

// NewID returns a fresh game ID
func NewID() string {
	return uuid.NewV4().String()
}

// NewSeed returns a random non-zero shuffle seed
func NewSeed() uint64 {
	var b [8]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			panic(err)
		}
		if seed := binary.LittleEndian.Uint64(b[:]); seed != 0 {
			return seed
		}
	}
}
