/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent      = "pgnstandings/0.3.0 (+https://github.com/mikeb26/pgnstandings)"
	WebCacheBucket = "bopmatic-pgnstandings-prod-webcache"

	// defaults for where round files live within a tournament repository
	DefaultDataBranch = "data"
	DefaultDataDir    = "data"

	UnknownPlayer = "Unknown"
)
