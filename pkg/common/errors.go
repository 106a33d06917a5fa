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

import "fmt"

// UnknownTierError reports a hardware tier identifier that is not registered
// in the benchmark catalog.
type UnknownTierError struct {
	TierID string
}

func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("hardware tier %q is not registered", e.TierID)
}

// InvalidDatasetError reports a dataset that is not a well-formed collection
// of examples.
type InvalidDatasetError struct {
	Reason string
}

func (e *InvalidDatasetError) Error() string {
	return fmt.Sprintf("invalid dataset: %s", e.Reason)
}

// InsufficientDataError reports an estimation request whose dataset size is
// unknown, from both the explicit argument and the configuration hint.
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data to estimate: %s", e.Reason)
}

// InvalidConfigurationError reports a training configuration with zero or
// negative epochs, batch size or dataset size.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid training configuration: %s", e.Reason)
}
