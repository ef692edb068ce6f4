// Package snapshot runs the firmware snapshot tests.
//
// Each case in the closed catalog names a fixture program in the snapshot
// tests directory. A run builds the fixture, captures its rendered log
// output, masks machine-specific fragments, and either compares the result
// with the checked-in golden file or records it as the new golden.
//
// Cases run one at a time. Fixture builds share a single build-output
// directory, so the suite never runs two of them concurrently.
package snapshot
