// Package gravatar builds deterministic avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// URL returns the gravatar URL for an email address: size 200, rating
// pg, "mystery man" default image. The email is trimmed and lowercased
// before hashing, so the URL is stable across formatting differences.
func URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}
