package idhash

import "crypto/md5"

// SeedMod hashes a seed string with MD5 and reduces the 128-bit digest,
// taken as a big-endian integer, modulo m. This reproduces the legacy
// int(hexdigest, 16) % m reduction exactly, which keeps the degraded-mode
// outputs byte-compatible with historical charts.
func SeedMod(seed string, m uint64) uint64 {
	digest := md5.Sum([]byte(seed))
	var r uint64
	for _, b := range digest {
		r = (r*256 + uint64(b)) % m
	}
	return r
}
