// Copyright 2025 The LaunchTune Authors. All rights reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"context"
	"errors"
	"fmt"

	log "github.com/golang/glog"
)

// Error is a structured service error.
type Error struct {
	// ComponentName indicates which component the error occurred in.
	ComponentName string

	// RawError is the underlying error.
	RawError error
}

// ErrorReporter reports an Error to an ErrorHandler. Reporting may block, so
// the invoker should pass its context to unblock when it is stopped.
type ErrorReporter interface {
	ReportError(ctx context.Context, err Error)
}

// ErrorHandler handles errors reported by an ErrorReporter.
type ErrorHandler interface {
	ErrorReporter

	// HandleError handles reported errors until the context is done.
	HandleError(ctx context.Context)
}

// NewStringError returns an Error wrapping a message.
func NewStringError(componentName, err string) Error {
	return Error{
		ComponentName: componentName,
		RawError:      errors.New(err),
	}
}

// NewError returns an Error wrapping err.
func NewError(componentName string, err error) Error {
	return Error{
		ComponentName: componentName,
		RawError:      err,
	}
}

// NewStopAllErrorHandler returns a handler that cancels the root context on
// the first reported error. Returns an error if cancelFunc is nil.
func NewStopAllErrorHandler(cancelFunc context.CancelFunc) (ErrorHandler, error) {
	if cancelFunc == nil {
		return nil, fmt.Errorf("cancelFunc is empty")
	}

	return &stopAllErrorHandler{
		ch:         make(chan Error, 1),
		cancelFunc: cancelFunc,
	}, nil
}

type stopAllErrorHandler struct {
	ch         chan Error
	cancelFunc context.CancelFunc
}

// ReportError sends the error to the handler channel.
func (s *stopAllErrorHandler) ReportError(ctx context.Context, err Error) {
	select {
	case <-ctx.Done():
		return
	case s.ch <- err:
	}
}

// HandleError cancels the root context when an error arrives.
func (s *stopAllErrorHandler) HandleError(ctx context.Context) {
	select {
	case <-ctx.Done():
		log.Infof("context is %v, exit error check", ctx.Err())
	case e := <-s.ch:
		log.Errorf("component %s reported: %v", e.ComponentName, e.RawError)
		s.cancelFunc()
	}
}
