// Package picker chooses which discovered championships a run processes.
//
// Three mutually exclusive modes exist: an interactive terminal checklist
// (championships with an existing calendar file start checked), an automated
// mode that takes exactly the championships with an existing file, and a
// dry-run mode that returns the full discovered list for display only.
package picker
