// Package sanitizer normalizes free-text patient input before validation.
//
// All functions are idempotent. Input that cannot be normalized is returned
// trimmed rather than rejected; rejecting is the validator's job.
//
// Normalization includes:
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Emails: trim and lowercase
//   - Phone numbers: E.164 (+[country][number]) when the number is valid
package sanitizer
