// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

// Logger is the minimal logging hook the engine calls into when it skips a
// malformed batch or observes a sequence-number gap. Logging sinks are an
// external collaborator (see package doc); the engine never depends on a
// concrete logging library so that the decode hot path stays allocation-free
// when no logger is configured.
type Logger interface {
	Printf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}
