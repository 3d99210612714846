package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"
)

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferenceSuffix returns n random chars (A-Z0-9).
// Uses crypto/rand + rand.Int (math/big) to avoid modulo bias.
func GenerateReferenceSuffix(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(referenceCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(referenceCharset[num.Int64()])
	}
	return sb.String(), nil
}

// NewReservationCode → "RES-20260115-4K2X9A"
func NewReservationCode() (string, error) {
	suffix, err := GenerateReferenceSuffix(6)
	if err != nil {
		return "", err
	}
	return "RES-" + time.Now().Format("20060102") + "-" + suffix, nil
}

// NewTransactionReference → "PAY-20260115-7B3M1QZC"
func NewTransactionReference() (string, error) {
	suffix, err := GenerateReferenceSuffix(8)
	if err != nil {
		return "", err
	}
	return "PAY-" + time.Now().Format("20060102") + "-" + suffix, nil
}
