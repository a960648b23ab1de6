// Package main provides a CLI tool for generating test tokens for the
// academy API. These tokens use the dev signing key and will NOT work in
// production.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"academy/pkg/requestcontext"
	"academy/pkg/secrets"
)

const (
	// Dev signing key - matches config.go when JWT_SIGNING_KEY is not set
	devSigningKey = "dev-secret-key-change-in-production"

	defaultTokenTTL = 15 * time.Minute
)

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	ExpiresIn string            `json:"expires_in,omitempty"`
	Claims    map[string]any    `json:"claims,omitempty"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	studentCmd := flag.NewFlagSet("student", flag.ExitOnError)
	adminCmd := flag.NewFlagSet("admin", flag.ExitOnError)
	adminTokenCmd := flag.NewFlagSet("admin-token", flag.ExitOnError)

	studentID := studentCmd.String("account-id", "", "Account ID (UUID). Generated if empty.")
	studentTTL := studentCmd.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	studentJSON := studentCmd.Bool("json", false, "Output as JSON")

	adminID := adminCmd.String("account-id", "", "Account ID (UUID). Generated if empty.")
	adminTTL := adminCmd.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	adminJSON := adminCmd.Bool("json", false, "Output as JSON")

	adminTokenJSON := adminTokenCmd.Bool("json", false, "Output as JSON")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "student":
		studentCmd.Parse(os.Args[2:])
		generateToken(*studentID, requestcontext.RoleStudent, *studentTTL, *studentJSON)
	case "admin":
		adminCmd.Parse(os.Args[2:])
		generateToken(*adminID, requestcontext.RoleAdmin, *adminTTL, *adminJSON)
	case "admin-token":
		adminTokenCmd.Parse(os.Args[2:])
		generateAdminToken(*adminTokenJSON)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Generate test tokens for the academy API

WARNING: These tokens use the dev signing key and will NOT work in production.
         Only use for local development and testing.

Usage:
  tokengen <command> [flags]

Commands:
  student      Generate a student bearer token (JWT)
  admin        Generate an admin bearer token (JWT)
  admin-token  Generate a fresh X-Admin-Token value with its bcrypt hash

Examples:
  # Generate a student token for a fresh account
  tokengen student

  # Generate an admin token for a known account
  tokengen admin -account-id "550e8400-e29b-41d4-a716-446655440000"

  # Generate an admin API token and the ADMIN_TOKEN_HASH to configure
  tokengen admin-token

Use "tokengen <command> -h" for more information about a command.`)
}

func generateToken(accountID string, role requestcontext.Role, ttl time.Duration, jsonOutput bool) {
	account := parseOrGenerateUUID(accountID)

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  account.String(),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(devSigningKey))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token:     token,
			Type:      "bearer_token",
			ExpiresIn: ttl.String(),
			Claims: map[string]any{
				"sub":  account.String(),
				"role": string(role),
			},
			Usage: map[string]string{
				"header":      "Authorization: Bearer <token>",
				"signing_key": "dev",
			},
		})
		return
	}

	fmt.Println("Bearer Token (JWT)")
	fmt.Println("==================")
	fmt.Printf("Account ID: %s\n", account)
	fmt.Printf("Role:       %s\n", role)
	fmt.Printf("Expires In: %s\n", ttl)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/...")
}

func generateAdminToken(jsonOutput bool) {
	token, err := secrets.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}
	hash, err := secrets.Hash(token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token: token,
			Type:  "admin_token",
			Usage: map[string]string{
				"header": "X-Admin-Token: " + token,
				"config": "ADMIN_TOKEN_HASH=" + hash,
			},
		})
		return
	}

	fmt.Println("Admin API Token")
	fmt.Println("===============")
	fmt.Printf("Token: %s\n", token)
	fmt.Println()
	fmt.Println("Configure the server with:")
	fmt.Printf("  ADMIN_TOKEN_HASH='%s'\n", hash)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"X-Admin-Token: " + token + "\" http://localhost:8080/...")
}

func parseOrGenerateUUID(input string) uuid.UUID {
	if input == "" {
		return uuid.New()
	}
	parsed, err := uuid.Parse(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid account ID UUID: %s\n", input)
		os.Exit(1)
	}
	return parsed
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
