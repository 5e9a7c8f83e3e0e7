// Package models defines the wire/domain types shared by the rectrade
// client: the authenticated user with its policy record, and the account
// collections the dashboard aggregates.
package models

import "strings"

// Role is the platform role assigned to an account. Permissions are derived
// from it; see the authz package.
type Role string

const (
	RoleTrader            Role = "trader"
	RoleFacilityOwner     Role = "facility-owner"
	RoleComplianceOfficer Role = "compliance-officer"
	RoleAdmin             Role = "admin"
)

// Tier is the account subscription tier.
type Tier string

const (
	TierBasic      Tier = "basic"
	TierPremium    Tier = "premium"
	TierEnterprise Tier = "enterprise"
)

// VerificationStatus tracks KYC-style account verification.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Preferences holds display settings. Free-form; no cross-field invariant.
type Preferences struct {
	Currency      string `json:"currency"` // AED or USD
	Language      string `json:"language"` // en or ar
	Notifications bool   `json:"notifications"`
	DarkMode      bool   `json:"darkMode"`
	CompactLayout bool   `json:"compactLayout"`
}

// PermissionSet is the five-flag capability record gating platform features.
// The server asserts one on the user; UI gating re-derives it from Role (see
// authz.PermissionsFor) so stale or tampered local state is never trusted.
type PermissionSet struct {
	Trade              bool `json:"canTrade"`
	RegisterFacilities bool `json:"canRegisterFacilities"`
	ViewAnalytics      bool `json:"canViewAnalytics"`
	ExportReports      bool `json:"canExportReports"`
	ManageUsers        bool `json:"canManageUsers"`
}

// User is the identity + profile + policy record owned by the Identity
// Service. The client holds it in memory only; the sole persisted credential
// is the opaque session token.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Emirate   string `json:"emirate"`

	Role               Role               `json:"role"`
	Tier               Tier               `json:"tier"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`

	Preferences Preferences   `json:"preferences"`
	Permissions PermissionSet `json:"permissions"`

	// Display-only metrics owned by the backend ledger.
	PortfolioValue float64 `json:"portfolioValue"`
	TotalRECs      float64 `json:"totalRecs"`
}

// NormalizeEmail lowercases and trims an email for lookup comparisons.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
