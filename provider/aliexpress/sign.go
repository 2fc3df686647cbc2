package aliexpress

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Sign computes the request signature the affiliate gateway expects:
// parameters sorted by key, concatenated as key+value with no separator,
// HMAC-SHA256 keyed by the app secret, hex-encoded uppercase.
//
// Pure function of the map contents: insertion order never matters.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var base strings.Builder
	for _, k := range keys {
		base.WriteString(k)
		base.WriteString(params[k])
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(base.String()))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}
