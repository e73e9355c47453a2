package domain

// ValidationResult is the verdict of a step validator.
type ValidationResult struct {
	Valid       bool        `json:"valid"`
	FieldErrors FieldErrors `json:"field_errors,omitempty"`
}

// Valid returns a passing result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid builds a result from field errors. An empty map yields a passing result.
func Invalid(errs FieldErrors) ValidationResult {
	if len(errs) == 0 {
		return Valid()
	}
	return ValidationResult{Valid: false, FieldErrors: errs}
}

// Merge combines two results. The first message recorded for a field wins.
func (r ValidationResult) Merge(other ValidationResult) ValidationResult {
	if other.Valid {
		return r
	}
	if r.Valid {
		return other
	}
	merged := make(FieldErrors, len(r.FieldErrors)+len(other.FieldErrors))
	for field, msg := range other.FieldErrors {
		merged[field] = msg
	}
	for field, msg := range r.FieldErrors {
		merged[field] = msg
	}
	return Invalid(merged)
}
