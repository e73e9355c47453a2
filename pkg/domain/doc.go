/*
Package domain contains the core types of the wizard engine.

It defines the draft record under construction, the static step descriptors,
the transient wizard state and the lifecycle events emitted while a user moves
through a flow. This package is kept pure and free of I/O or persistence
concerns, following Hexagonal Architecture principles.

# Key Entities

  - Draft: the composite record being built, one Slice per step.
  - StepDefinition: immutable descriptor of a step (id, title, slice key).
  - WizardState: current step, furthest validated step and per-step errors.
  - Snapshot: a serializable capture of one editing session.
  - LifecycleHooks: callbacks for observability (enter, leave, submit, cancel).
*/
package domain
