// Package refnum builds human-readable reference numbers such as PAY-482913-7QK2ZD.
// Values are not collision-checked.
package refnum

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"
)

const (
	alphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLength = 6
	// largest multiple of len(alphabet) that fits in a byte
	maxUnbiased = 252

	PaymentPrefix = "PAY"
	RefundPrefix  = "RFD"
)

// Generator produces PREFIX-dddddd-XXXXXX values from the clock and a random source.
type Generator struct {
	prefix string
	now    func() time.Time
	random io.Reader
}

// New returns a Generator backed by the wall clock and crypto/rand.
func New(prefix string) *Generator {
	return &Generator{prefix: prefix, now: time.Now, random: rand.Reader}
}

// NewWithSource is New with an injectable clock and random source.
func NewWithSource(prefix string, now func() time.Time, random io.Reader) *Generator {
	return &Generator{prefix: prefix, now: now, random: random}
}

// Next returns a new reference number.
func (g *Generator) Next() string {
	millis := g.now().UnixMilli() % 1_000_000
	if millis < 0 {
		millis = -millis
	}
	return fmt.Sprintf("%s-%06d-%s", g.prefix, millis, g.suffix())
}

// suffix draws characters by rejection sampling: bytes at or above
// maxUnbiased are discarded so every character is equally likely.
func (g *Generator) suffix() string {
	out := make([]byte, 0, suffixLength)
	buf := make([]byte, suffixLength)
	for len(out) < suffixLength {
		if _, err := io.ReadFull(g.random, buf); err != nil {
			return string(g.clockFill(out))
		}
		for _, b := range buf {
			if b >= maxUnbiased {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == suffixLength {
				break
			}
		}
	}
	return string(out)
}

// clockFill completes out from clock bits so Next never fails.
func (g *Generator) clockFill(out []byte) []byte {
	n := uint64(g.now().UnixNano())
	for i := len(out); i < suffixLength; i++ {
		out = append(out, alphabet[byte(n>>(i*8))%byte(len(alphabet))])
	}
	return out
}
