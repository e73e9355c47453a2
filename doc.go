/*
Package dashboard is the stepped-form wizard engine behind the "Create Agent"
and "New Campaign" flows of the call-center dashboard.

A flow is an ordered list of steps. Each step owns exactly one slice of a
draft record; field changes merge into that slice only. Next is gated by the
step's validator, Back never validates, jumps are limited to steps already
reached, and the final Next hands the whole draft to a Submitter exactly once.

# Concept

The engine keeps no UI. A host (web handler, CLI, test) renders the current
step however it likes, feeds field changes back with Update, and calls Next or
Back. The wizard itself is a small synchronous state machine:

	editing(step 0) -> editing(step 1) -> ... -> submitted
	        \______________ Cancel ______________/-> cancelled

# Usage

	package main

	import (
		"context"
		"log"

		dashboard "github.com/AI-call-center/modern-dashboard"
		"github.com/AI-call-center/modern-dashboard/pkg/domain"
		"github.com/AI-call-center/modern-dashboard/pkg/ports"
	)

	func main() {
		ctx := context.Background()

		submit := ports.SubmitFunc(func(ctx context.Context, flowID string, d domain.Draft) error {
			log.Printf("creating %s: %v", flowID, d)
			return nil
		})

		w, err := dashboard.NewBuiltin("agent", dashboard.WithSubmitter(submit))
		if err != nil {
			log.Fatal(err)
		}

		_ = w.Update("basicInfo", domain.Slice{"name": "Sales Assistant"})
		res, err := w.Next(ctx)
		if err != nil {
			log.Fatal(err)
		}
		if !res.Valid {
			log.Printf("fix: %v", res.FieldErrors)
		}
	}

Hosts serving many users at once use Sessions, which parks every wizard in a
ports.SessionStore and serializes calls per session ID.
*/
package dashboard
