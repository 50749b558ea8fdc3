// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey names the request-scoped context values. The key type is
// unexported so chi and other middleware cannot collide with them.
package ctxkey

type key uint8

const (
	KeyRequestID key = iota + 1
	KeyLogger

	// KeyUser holds the verified [sec.AuthClaims] of an admin caller.
	KeyUser
)
