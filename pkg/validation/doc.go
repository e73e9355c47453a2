/*
Package validation implements the validation gate of the wizard: pure,
deterministic functions deciding whether a slice is complete enough to leave
its step.

A Registry maps slice keys to validators. Slices without an entry are checked
by AlwaysValid, so "this step has no requirements" is an explicit policy that
tests can assert rather than an accidental gap.

	reg := validation.NewRegistry().
	    Register("basicInfo", validation.Required("name", "Name is required")).
	    Register("behaviour", validation.Required("greeting", ""))

	res := reg.Validate("basicInfo", domain.Slice{"name": ""})
	// res.Valid == false, res.FieldErrors["name"] == "Name is required"
*/
package validation
