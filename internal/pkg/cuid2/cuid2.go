// Package cuid2 generates short, collision-resistant base62 identifiers used
// for request ids and refresh run ids.
package cuid2

import (
	"crypto/rand"
	"strings"
	"time"
)

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	timestampLength       = 6
	defaultSortableLength = 18
	defaultRandomLength   = 24
)

// EncodeTimestamp encodes unix seconds as a fixed-width base62 string that
// sorts lexicographically in time order.
func EncodeTimestamp(seconds int64) string {
	out := make([]byte, timestampLength)
	n := seconds
	for i := timestampLength - 1; i >= 0; i-- {
		out[i] = base62Alphabet[n%62]
		n /= 62
	}
	return string(out)
}

// randomString returns length base62 characters drawn from crypto/rand.
// Six bits are consumed per character and values >= 62 are rejected.
func randomString(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	buf := make([]byte, length+length/4+4)
	for sb.Len() < length {
		if _, err := rand.Read(buf); err != nil {
			panic("cuid2: read random bytes: " + err.Error())
		}
		var bits uint64
		var n uint
		for _, b := range buf {
			bits = bits<<8 | uint64(b)
			n += 8
			for n >= 6 && sb.Len() < length {
				v := (bits >> (n - 6)) & 0x3f
				n -= 6
				if v < 62 {
					sb.WriteByte(base62Alphabet[v])
				}
			}
			if sb.Len() == length {
				break
			}
		}
	}
	return sb.String()
}

// Options tune Prefixed.
type Options struct {
	// Unsorted drops the timestamp prefix.
	Unsorted bool
	// Length of the random part. Defaults to 18 with a timestamp, 24 without.
	Length int
}

// Prefixed returns "<prefix>_<id>". By default the id starts with a
// timestamp so ids generated later sort after earlier ones.
func Prefixed(prefix string, opts Options) string {
	length := opts.Length
	if opts.Unsorted {
		if length <= 0 {
			length = defaultRandomLength
		}
		return prefix + "_" + randomString(length)
	}
	if length <= 0 {
		length = defaultSortableLength
	}
	return prefix + "_" + EncodeTimestamp(time.Now().Unix()) + randomString(length)
}
