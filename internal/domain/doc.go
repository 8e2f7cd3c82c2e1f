// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/project) and the field
// constraint checks live in domain/validation. This root package holds the
// sentinel errors and the field-level ValidationError shared by all of them.
package domain
