package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"timecard.backend/pkg/crypto"
)

var (
	stdout  io.Writer = os.Stdout
	fatalFn           = log.Fatal
)

// hashPassword produces the bcrypt hash stored in identities.password_hash.
// Weak passwords are refused so a manual reset cannot bypass the signup rules.
func hashPassword(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", errors.New("usage: hash-password <password>")
	}
	if err := crypto.ValidatePasswordStrength(args[0]); err != nil {
		return "", err
	}
	return crypto.HashPassword(args[0])
}

func main() {
	hash, err := hashPassword(os.Args[1:])
	if err != nil {
		fatalFn(err)
		return
	}
	_, _ = fmt.Fprintf(stdout, "Bcrypt Hash: %s\n", hash)
}
