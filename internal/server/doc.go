// Package server implements the HTTP API that accepts chained form submissions.
//
// POST /api/submit checks field literals and formats, applies the same step rules
// the wizard enforces, assigns a submission id and records the submission.
// Rule violations are answered with 422 and a "detail" message.
package server
