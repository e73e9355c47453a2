// Package schema provides type checks for the fields of a draft slice.
//
// A Schema maps field names to a Type. Built-in types cover the shapes a
// wizard step produces (string, int, float, bool, clock time, lists and
// nested objects):
//
//	s := schema.Schema{
//	    "name":      schema.String(),
//	    "variables": schema.Slice(schema.Object()),
//	    "start":     schema.Clock(),
//	}
//
//	errs := schema.Check(s, slice) // domain.FieldErrors, nil when valid
//
// Schemas are usually written in flow YAML as a map of type names and parsed
// with ParseTypeMap (or yaml.Unmarshal directly):
//
//	schema:
//	  name: string
//	  variables: "[object]"
//	  start: time
package schema
