// Package sanitizer normalizes operator- and client-supplied strings before
// validation and persistence: whitespace collapsing for names and free text,
// E.164 normalization for phone numbers.
package sanitizer
