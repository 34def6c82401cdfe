package constants

import "time"

// Parsing bounds
const MinQuestionNumber = 1
const MaxQuestionNumber = 100
const MinOptionsPerQuestion = 2
const MaxOptionsPerQuestion = 5

// AnswerSectionRatio is the positional fallback used when no "answer"
// header line is found: the key is assumed to start this far into the
// document. Overridable via config.
const AnswerSectionRatio = 2.0 / 3.0

// Upload handling
const MaxUploadBytes = 20 << 20

// HTTP server timeouts
const ReadTimeout = 15 * time.Second
const WriteTimeout = 30 * time.Second
const IdleTimeout = 90 * time.Second
const ShutdownTimeout = 10 * time.Second
