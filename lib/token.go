package lib

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GenerateRandomToken generates a cryptographically secure random token
func GenerateRandomToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// OrderCodeAlphabet excludes I, O, 0 and 1 to keep codes unambiguous when
// read aloud or written down.
const OrderCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const orderNumberPrefix = "SD-"

// GenerateOrderCode produces an order number candidate of the form SD-XXXXXX.
// The six characters are drawn from OrderCodeAlphabet using a
// cryptographically strong source, so codes are not guessable or enumerable.
// Uniqueness is the caller's concern.
func GenerateOrderCode() (string, error) {
	const length = 6

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate order code: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(orderNumberPrefix)
	for _, b := range bytes {
		sb.WriteByte(OrderCodeAlphabet[int(b)%len(OrderCodeAlphabet)])
	}

	return sb.String(), nil
}

// OrderCodeFallback appends a base-36 timestamp suffix to a candidate code.
// Used only when repeated collision checks fail, to guarantee termination
// without an unbounded retry loop.
func OrderCodeFallback(code string) string {
	suffix := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return fmt.Sprintf("%s-%s", code, suffix)
}
