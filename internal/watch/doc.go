// Package watch keeps generated test files in sync with their spec
// files. It monitors a spec file or directory tree with fsnotify,
// debounces bursts of filesystem events, and invokes a regeneration
// callback once changes settle.
package watch
