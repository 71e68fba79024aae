// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key validation and token generation utilities.

Session identity itself is externally supplied (callers pass X-User-ID); this
package only covers the material the server derives itself.

# Admin Key

The site admin key uses HMAC-SHA256 to create a deterministic, verifiable key:

	adminKey := auth.GenerateAdminKey(salt)
	err := auth.ValidateAdminKey(adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same salt always produces the same key. This allows validation without
storing the key in the database.

# Challenge Slugs

Slugs create URL-friendly identifiers for challenges. Admin-supplied slugs are
checked with ValidSlug (alphanumerics and single hyphens); when no
slug is supplied one is derived from the challenge ID:

	slug := auth.GenerateSlug(challengeID, salt)

Slugs are base62 encoded (alphanumeric only) for easy sharing. Like the admin
key, they're deterministic from the challenge ID and salt.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving submission auditing:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
