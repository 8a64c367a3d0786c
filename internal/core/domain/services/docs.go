// Package services contains stateless domain services. ActionPolicy is the
// single source of truth for whether a requested order action is permitted;
// it never raises on business grounds, only returns decisions.
package services
