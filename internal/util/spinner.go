// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
)

const spinnerCharSet = 31

var working = spinner.New(
	spinner.CharSets[spinnerCharSet], 100*time.Millisecond,
	spinner.WithWriter(os.Stderr),
)

// StartSpinner starts the ~working~ spinner. The spinner stays hidden when
// trace logging is enabled, so it doesn't garble the log output.
func StartSpinner() {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		return
	}

	working.Start()
}

// PauseSpinner stops the ~working~ spinner if it is running.
func PauseSpinner() {
	working.Stop()
}

// Spin runs fn with the ~working~ spinner going.
func Spin(fn func() error) error {
	StartSpinner()
	defer PauseSpinner()

	return fn()
}
