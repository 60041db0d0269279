// Package order holds the pizza order form state machine: the draft being
// edited, per-field validation, the derived enabled flag that gates
// submission, and the confirmation text produced by a successful submit.
//
// A Form is owned by a single actor. Front-ends (HTML, terminal) feed it one
// change at a time and render whatever it reports back; none of them keep
// validation logic of their own.
package order
