package policy

import "strings"

// IdentityHeader is the custom request header carrying the caller identity
// as comma-separated key:value pairs, e.g. "userId:11,orderId:1001".
const IdentityHeader = "X-Header-One"

// ParseIdentityHeader extracts the userId and orderId pairs from a raw
// header value. Keys are case-insensitive; values are trimmed. Malformed
// segments (no colon) are silently skipped; a bad header never fails the
// request, it just resolves to empty values.
func ParseIdentityHeader(headerValue string) (userID, orderID string) {
	if headerValue == "" {
		return "", ""
	}
	for _, pair := range strings.Split(headerValue, ",") {
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch {
		case strings.EqualFold(key, "userId"):
			userID = value
		case strings.EqualFold(key, "orderId"):
			orderID = value
		}
	}
	return userID, orderID
}
