// Command hash-gen prints a bcrypt hash for manual account setup. With
// -email it prints a ready-to-run statement that resets that user's password.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"complianceconnect.backend/internal/infrastructure/models"
	"complianceconnect.backend/internal/infrastructure/seed"
	"complianceconnect.backend/pkg/crypto"
)

var (
	generateHashFn = crypto.HashPassword
	fatalfFn       = log.Fatalf
)

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("hash-gen", flag.ContinueOnError)
	fs.SetOutput(out)
	email := fs.String("email", "", "emit a password reset statement for this account")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password := seed.DefaultPassword
	if fs.NArg() > 0 {
		password = fs.Arg(0)
	}

	hash, err := generateHashFn(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if !crypto.CheckPassword(password, hash) {
		return errors.New("generated hash does not verify")
	}

	if *email == "" {
		fmt.Fprintf(out, "Bcrypt Hash: %s\n", hash)
		return nil
	}
	fmt.Fprintf(out, "UPDATE %s SET password_hash = '%s' WHERE email = '%s';\n",
		models.User{}.TableName(), hash, strings.ReplaceAll(strings.ToLower(*email), "'", "''"))
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fatalfFn("hash-gen: %v", err)
	}
}
