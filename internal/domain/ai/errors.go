package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrEmptyCompletion indicates the provider answered successfully but with no
// text. Not retried: repeating an identical prompt would mask a systemic
// prompt problem.
var ErrEmptyCompletion = errors.New("ai returned empty completion")

// ErrExhausted indicates every attempt failed with a transport or upstream error.
var ErrExhausted = errors.New("ai attempts exhausted")
