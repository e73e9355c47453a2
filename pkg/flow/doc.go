/*
Package flow describes wizard flows as data.

A Definition lists the ordered steps of a wizard, the default value of every
slice, the validation rules per slice and optional field metadata used by
renderers. Definitions are written in YAML:

	id: campaign
	title: New Campaign
	steps:
	  - id: details
	    title: Campaign Details
	    slice: details
	defaults:
	  details: {name: "", type: Outbound}
	rules:
	  details:
	    - {kind: required, field: name}

or assembled in Go with the fluent Builder. The builtin "agent", "campaign"
and "quick-agent" flows are embedded in the binary.
*/
package flow
