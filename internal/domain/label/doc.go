// Package label contains the label printing domain: the request collected by
// the form, the transient job that tracks one submission through rendering and
// printing, and the fixed page layout of a label.
package label
