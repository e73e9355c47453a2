/*
Package draft implements the draft store: pure functions that build and update
the composite record a wizard assembles.

Every operation returns a new domain.Draft. Slices that an operation does not
touch are carried over as the same map instance, so a host can detect changes
with domain.SameSlice instead of comparing values.

	d := draft.Initialize(map[string]domain.Slice{
	    "basicInfo": {"name": "", "voice": "Christopher"},
	    "behaviour": {"greeting": ""},
	})

	d, err := draft.MergeSlice(d, "basicInfo", domain.Slice{"name": "Ava"})
	// d["basicInfo"] == {"name": "Ava", "voice": "Christopher"}
	// d["behaviour"] is the same map as before the merge.
*/
package draft
