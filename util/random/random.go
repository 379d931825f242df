// Package random provides utilities for generating random strings and numbers.
package random

import (
	"crypto/rand"
	"math/big"
)

const (
	digits  = "0123456789"
	upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lower   = "abcdefghijklmnopqrstuvwxyz"
	allSeq  = digits + lower + upper
	codeSeq = digits + upper
)

// Seq generates a random alphanumeric string of length n.
func Seq(n int) string {
	return fromAlphabet(allSeq, n)
}

// Code generates a random string of length n over digits and upper-case letters.
func Code(n int) string {
	return fromAlphabet(codeSeq, n)
}

// Num generates a random integer between 0 and n-1.
func Num(n int) int {
	bn := big.NewInt(int64(n))
	r, err := rand.Int(rand.Reader, bn)
	if err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return int(r.Int64())
}

func fromAlphabet(alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[Num(len(alphabet))]
	}
	return string(b)
}
