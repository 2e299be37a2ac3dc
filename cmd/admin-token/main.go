package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/piensaperu/api/pkg/jwt"
)

func main() {
	privateKeyPath := flag.String("key", "./keys/private.pem", "Path to JWT private key")
	publicKeyPath := flag.String("pub", "./keys/public.pem", "Path to JWT public key (written by -generate-keys)")
	subject := flag.String("sub", "admin", "Subject of the token")
	name := flag.String("name", "Admin", "Display name for the token")
	issuer := flag.String("issuer", "api.piensaperu.pe", "JWT issuer")
	expMins := flag.Int("exp", 60*24*7, "Token expiration in minutes (default: 7 days)")
	generateKeys := flag.Bool("generate-keys", false, "Generate a new RSA key pair and exit")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *generateKeys {
		if err := jwt.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating keys: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s and %s\n", *privateKeyPath, *publicKeyPath)
		return
	}

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *privateKeyPath,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nGenerate keys first with: admin-token -generate-keys\n")
		os.Exit(1)
	}

	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: *subject},
		Name:             *name,
		Role:             jwt.RoleAdmin,
	}

	token, err := jwtService.Sign(claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"sub":          *subject,
			"role":         jwt.RoleAdmin,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
		return
	}

	expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
	fmt.Println("Admin Token Generated")
	fmt.Println("=====================")
	fmt.Printf("Subject:  %s\n", *subject)
	fmt.Printf("Role:     %s\n", jwt.RoleAdmin)
	fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  curl -X DELETE -H 'Authorization: Bearer %s' http://localhost:8080/v1/militants/1\n", token[:min(len(token), 50)]+"...")
}
