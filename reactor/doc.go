// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the poll-mode descriptor multiplexer that
// backs internal/platform.RawInputSource: an fd/handle goes in via
// Register, a batch of (fd, userData) wakeups comes out of Wait, one
// per ready descriptor, which RawInputSource turns into posted
// api.Event values. Two implementations are selected by build tag
// (epoll on Linux, IOCP on Windows); everything else gets a stub that
// reports the platform unsupported, since raw input is an optional
// platform collaborator, not a required one (spec.md §1).
package reactor
