// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (account-data shapes), contracts (interfaces) and
// the error taxonomy only.
package domain
