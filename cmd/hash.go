package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// RunHashPassword reads a password from stdin and prints its bcrypt
// hash, ready to be used as AUTH_PASSWORD_HASH for the server.
func RunHashPassword() error {
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read password from stdin: %w", err)
	}

	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to generate password hash: %w", err)
	}

	fmt.Println(string(hash))
	return nil
}
