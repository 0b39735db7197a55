package models

// Fingerprint is a salted, period-rotating visitor hash. It is the only
// visitor-derived value allowed to cross into the aggregation engine.
type Fingerprint string
