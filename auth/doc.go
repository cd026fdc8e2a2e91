// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles identity verification and token generation.

# Judge Codes

GenerateJudgeCode creates the random URL-safe code that is a judge's
whole identity: one code, one submission. JudgeLink builds the invite
URL an admin hands to the judge.

# Identity Verification

Verifier is the narrow client for the external identity service: it
posts the access-token cookie to <base>/check and returns the verified
email, name, and roles. Nothing else about the provider leaks into the
rest of the code.

# Admin Determination

IsAdmin grants admin rights to the configured super admin, any identity
carrying a faculty role, and emails whitelisted in the admins table.

# IDs

GenerateID produces the random hex ids used as primary keys, so the
schema stays portable across database engines.
*/
package auth
