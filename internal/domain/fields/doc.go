// Package fields holds the two primitives that write entry fields:
//
//   - Update and its helpers apply one write and report the FieldChange it
//     caused, if any. Cleanup jobs route every write through here.
//   - SetAutomaticFields stamps owner and timestamp fields in bulk at import
//     time. It writes directly and emits no change records.
package fields
