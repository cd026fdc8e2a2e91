// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrTokenInvalid = errors.New("token rejected by identity service")

// Identity is the verified user returned by the identity service.
type Identity struct {
	Active     bool     `json:"active"`
	Email      string   `json:"email"`
	GivenName  string   `json:"given_name"`
	FamilyName string   `json:"family_name"`
	Roles      []string `json:"roles"`
}

// DisplayName formats the public name shown on comments: first name
// plus last initial.
func (id Identity) DisplayName() string {
	name := id.GivenName
	if id.FamilyName != "" {
		name += " " + id.FamilyName[:1] + "."
	}
	return strings.TrimSpace(name)
}

// Verifier checks access tokens against the external identity service.
// The engine never sees tokens; handlers only receive the verified
// email and admin flag.
type Verifier struct {
	BaseURL string
	Client  *http.Client
}

func NewVerifier(baseURL string) *Verifier {
	return &Verifier{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Check posts the token to the identity service's /check endpoint and
// returns the identity it vouches for. An inactive or rejected token
// yields ErrTokenInvalid.
func (v *Verifier) Check(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrTokenInvalid
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.BaseURL+"/check", nil)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to build check request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.Client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("identity service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, ErrTokenInvalid
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return Identity{}, fmt.Errorf("failed to decode identity: %w", err)
	}
	if !id.Active {
		return Identity{}, ErrTokenInvalid
	}
	return id, nil
}

// IsAdmin reports whether the identity has admin rights: the configured
// super admin, any faculty role, or a whitelist row in the admins table.
func IsAdmin(db *sql.DB, id Identity, superAdmin string) bool {
	if id.Email == "" {
		return false
	}

	email := strings.ToLower(id.Email)
	if superAdmin != "" && email == strings.ToLower(superAdmin) {
		return true
	}
	for _, role := range id.Roles {
		if strings.EqualFold(role, "faculty") {
			return true
		}
	}

	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return false
	}
	return exists
}
