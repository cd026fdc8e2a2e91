// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

var (
	ErrNoTeamEmails   = errors.New("at least one team email is required")
	ErrDuplicateEmail = errors.New("duplicate team email")
)

// TeamEmails is the ordered set of a project's member addresses. It is
// stored as a JSON array in a single column; the encoding happens only
// here, at the persistence boundary.
type TeamEmails []string

// ParseTeamEmails validates raw addresses into a TeamEmails value.
// Addresses must be well formed and unique (case-insensitive). When
// domain is non-empty, every address must belong to it.
func ParseTeamEmails(raw []string, domain string) (TeamEmails, error) {
	if len(raw) == 0 {
		return nil, ErrNoTeamEmails
	}

	seen := make(map[string]bool, len(raw))
	emails := make(TeamEmails, 0, len(raw))
	for _, r := range raw {
		e := strings.TrimSpace(r)
		if _, err := mail.ParseAddress(e); err != nil {
			return nil, fmt.Errorf("invalid email %q: %w", r, err)
		}
		lower := strings.ToLower(e)
		if seen[lower] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, e)
		}
		if domain != "" && !strings.HasSuffix(lower, "@"+strings.ToLower(domain)) {
			return nil, fmt.Errorf("email %q must be a @%s address", e, domain)
		}
		seen[lower] = true
		emails = append(emails, e)
	}

	return emails, nil
}

// Contains reports whether email is a member address. Comparison is
// case-insensitive.
func (t TeamEmails) Contains(email string) bool {
	for _, e := range t {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer, serializing to a JSON array column.
func (t TeamEmails) Value() (driver.Value, error) {
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("failed to encode team emails: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for the JSON array column.
func (t *TeamEmails) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(t))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(t))
	default:
		return fmt.Errorf("cannot scan team emails from %T", src)
	}
}
