// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rowsource

// A Runner executes submitted tasks on goroutines of its own. Submit is
// fire-and-forget and must not block the caller: a [Source] relies on the
// handoff completing immediately, with results travelling back through the
// source's own synchronization rather than through the runner. A Runner
// makes no ordering promise between tasks submitted by different sources.
type Runner interface {
	Submit(task func())
}

// RunnerFunc adapts a function to the [Runner] interface.
type RunnerFunc func(task func())

// Submit calls f(task).
func (f RunnerFunc) Submit(task func()) {
	f(task)
}

// GoRunner returns a Runner that starts every submitted task on a fresh
// goroutine. It is adequate for tests and small deployments; shared
// production pipelines typically want the bounded concurrency of a
// [WorkerPool] instead.
func GoRunner() Runner {
	return RunnerFunc(func(task func()) {
		go task()
	})
}
