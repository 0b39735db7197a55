package sessions

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"hit-analytics/internal/models"

	"golang.org/x/crypto/blake2b"
)

const fingerprintBytes = 16

// Fingerprinter derives short-lived visitor fingerprints from request
// metadata. The salt rotates every period, so the same visitor hashes to
// different fingerprints across periods and cannot be correlated between
// them. Raw address and user agent never leave this package.
//
//go:generate mockgen -source=fingerprinter.go -destination=./mocks/fingerprinter_mock.go -package=mocks
type Fingerprinter interface {
	Fingerprint(siteID, remoteAddr, userAgent string, ts time.Time) models.Fingerprint
}

type fingerprinter struct {
	key    [32]byte // secret reduced to a fixed-size MAC key
	period time.Duration
}

func NewFingerprinter(secret string, rotationPeriod time.Duration) Fingerprinter {
	return &fingerprinter{
		key:    blake2b.Sum256([]byte(secret)),
		period: rotationPeriod,
	}
}

func (f *fingerprinter) Fingerprint(siteID, remoteAddr, userAgent string, ts time.Time) models.Fingerprint {
	salt := f.saltForPeriod(ts)

	h, err := blake2b.New(fingerprintBytes, salt)
	if err != nil {
		// Only reachable with an invalid digest size or oversized key,
		// both fixed at compile time.
		panic(err)
	}
	h.Write([]byte(siteID))
	h.Write([]byte{0})
	h.Write([]byte(remoteAddr))
	h.Write([]byte{0})
	h.Write([]byte(userAgent))

	return models.Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

// saltForPeriod derives the salt for the rotation period containing ts,
// deterministically from the secret and the period index.
func (f *fingerprinter) saltForPeriod(ts time.Time) []byte {
	idx := ts.Unix() / int64(f.period/time.Second)

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(idx))

	h, err := blake2b.New256(f.key[:])
	if err != nil {
		panic(err)
	}
	h.Write(buf[:])
	return h.Sum(nil)
}
