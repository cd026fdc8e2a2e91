// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateJudgeCode creates a cryptographically secure random code for
// judge authentication. 32 bytes = 256 bits of entropy, URL-safe.
func GenerateJudgeCode() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate judge code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// JudgeLink builds the complete judge voting URL for a hackathon.
func JudgeLink(baseURL, basePath, hackathonID, code string) string {
	return strings.TrimRight(baseURL, "/") + strings.TrimRight(basePath, "/") + "/" + hackathonID + "/judgevote?code=" + code
}
