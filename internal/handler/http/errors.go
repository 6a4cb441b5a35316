// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrNoIdentity is reported when a protected handler runs without the
// identity the auth middleware stores in the request context.
var ErrNoIdentity = errors.New("no identity in request context")
