// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// ErrUnknownRole is returned when a role wire string does not name one of
// the known roles.
var ErrUnknownRole = errors.New("unknown role")

// Role is the closed set of account roles. The zero value is not a valid
// role and is never persisted.
type Role uint8

const (
	RoleUnknown Role = iota
	// RoleAdminMaster is the top-level administrator, the only role allowed
	// to provision new accounts.
	RoleAdminMaster
	// RoleAdminTechnical is a technical operator.
	RoleAdminTechnical
	// RoleViewer has read-only access to the panel.
	RoleViewer
)

// Wire values are shared with existing panel clients and must not change.
const (
	roleAdminMasterWire    = "admin_master"
	roleAdminTechnicalWire = "admin_tecnico"
	roleViewerWire         = "visualizador"
)

// ParseRole maps a wire string to a [Role]. It returns [ErrUnknownRole] for
// anything that is not an exact wire value.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleAdminMasterWire:
		return RoleAdminMaster, nil
	case roleAdminTechnicalWire:
		return RoleAdminTechnical, nil
	case roleViewerWire:
		return RoleViewer, nil
	default:
		return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// String returns the wire value of the role, or an empty string for
// [RoleUnknown].
func (r Role) String() string {
	switch r {
	case RoleAdminMaster:
		return roleAdminMasterWire
	case RoleAdminTechnical:
		return roleAdminTechnicalWire
	case RoleViewer:
		return roleViewerWire
	default:
		return ""
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdminMaster, RoleAdminTechnical, RoleViewer:
		return true
	default:
		return false
	}
}

// MarshalText implements [encoding.TextMarshaler]; JSON and token payloads
// carry the wire string.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrUnknownRole
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Value implements [driver.Valuer] so roles are stored as wire strings.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, ErrUnknownRole
	}
	return r.String(), nil
}

// Scan implements [sql.Scanner].
func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrUnknownRole, src)
	}
}
