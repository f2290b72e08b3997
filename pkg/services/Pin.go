package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	minPin = 1000
	maxPin = 9999
)

/*
GeneratePin returns a random 4 digit PIN between 1000 and 9999.
*/
func GeneratePin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxPin-minPin+1))
	if err != nil {
		return "", fmt.Errorf("error generating PIN: %w", err)
	}

	return fmt.Sprintf("%d", n.Int64()+minPin), nil
}
