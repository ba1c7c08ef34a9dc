package cache

import "fmt"

const DenylistKeyPrefix = "blacklist:%s"

// DenylistKey returns the Redis key marking the token with the given jti as revoked.
func DenylistKey(jti string) string {
	return fmt.Sprintf(DenylistKeyPrefix, jti)
}
