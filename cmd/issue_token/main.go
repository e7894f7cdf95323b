// Command issue_token mints a signed operator token for the ledger API.
//
//	issue_token -operator teller-07 -ttl 8h
//
// The signing secret and issuer come from the same environment as the
// server. With -prompt-secret the secret is read from the terminal instead.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/bank_ledger/internal/platform/config"
	"github.com/SscSPs/bank_ledger/internal/utils"
	"github.com/fatih/color"
	"golang.org/x/term"
)

func main() {
	operator := flag.String("operator", "", "operator ID recorded on every change made with the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	promptSecret := flag.Bool("prompt-secret", false, "read the signing secret from the terminal")
	flag.Parse()

	if err := run(*operator, *ttl, *promptSecret); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(operator string, ttl time.Duration, promptSecret bool) error {
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return fmt.Errorf("-operator is required")
	}
	if ttl <= 0 {
		return fmt.Errorf("-ttl must be positive, got %s", ttl)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	secret := cfg.JWTSecret
	if promptSecret {
		if secret, err = readSecret(); err != nil {
			return err
		}
	}

	token, err := utils.GenerateOperatorToken(operator, secret, cfg.JWTIssuer, ttl)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(os.Stderr, "token for %s valid until %s\n",
		operator, time.Now().Add(ttl).Format(time.RFC3339))
	fmt.Println(token)
	return nil
}

func readSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("-prompt-secret needs an interactive terminal")
	}
	fmt.Fprint(os.Stderr, "JWT secret: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	secret := strings.TrimSpace(string(raw))
	if secret == "" {
		return "", fmt.Errorf("secret cannot be empty")
	}
	return secret, nil
}
